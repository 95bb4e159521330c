package web

import (
	"errors"
	"net/http"
	"strings"

	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/lesson"
)

// validationError reports bad form input with a 400.
func validationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lesson.ErrEmptyStudent),
		errors.Is(err, lesson.ErrEmptyDate),
		errors.Is(err, lesson.ErrInvalidTime),
		errors.Is(err, orchestrators.ErrEmptyDate),
		errors.Is(err, orchestrators.ErrCategoryNotAllowed):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		storeError(w, err)
	}
}

// handleDay is the coach day editor: GET shows the date's lessons as an
// editable grid, POST commits the whole day wholesale.
func handleDay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		date := r.URL.Query().Get("date")
		if date == "" {
			date = timeNow().Format("2006-01-02")
		}

		result, err := projections.QueryGetDaySchedule(ctx,
			projections.GetDayScheduleQuery{Date: date},
			projections.GetDayScheduleDeps{LessonStore: stores.LessonStore})
		if err != nil {
			internalError(w, err)
			return
		}
		categories, err := projections.QueryCategoriesInUse(ctx, projections.GetAllowedCategoriesDeps{
			CategoryStore: stores.CategoryStore,
			LessonStore:   stores.LessonStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "day.html", map[string]any{
				"Date":       result.Date,
				"Lessons":    result.Lessons,
				"Categories": categories,
			})
			return
		}
		writeJSON(w, result)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.ReplaceDayInput{}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.Date = r.FormValue("Date")
			times := r.Form["Time"]
			students := r.Form["Student"]
			categories := r.Form["Category"]
			notes := r.Form["Note"]
			for i := range students {
				// Rows left blank in the editor are dropped, matching the
				// wholesale replace model.
				if strings.TrimSpace(students[i]) == "" {
					continue
				}
				l := lesson.Lesson{Student: students[i]}
				if i < len(times) {
					l.Time = times[i]
				}
				if i < len(categories) {
					l.Category = categories[i]
				}
				if i < len(notes) {
					l.Note = notes[i]
				}
				input.Lessons = append(input.Lessons, l)
			}
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
		}

		err := orchestrators.ExecuteReplaceDay(ctx, input,
			orchestrators.ReplaceDayDeps{LessonStore: stores.LessonStore})
		if err != nil {
			validationError(w, err)
			return
		}

		if isHTMLRequest(r) {
			http.Redirect(w, r, "/day?date="+input.Date, http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// handleAddLesson is the quick-add form: one lesson appended to a date.
func handleAddLesson(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	input := orchestrators.AddLessonInput{}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Date = r.FormValue("Date")
		input.Time = r.FormValue("Time")
		input.Student = r.FormValue("Student")
		input.Category = r.FormValue("Category")
		input.Note = r.FormValue("Note")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	err := orchestrators.ExecuteAddLesson(ctx, input, orchestrators.AddLessonDeps{
		LessonStore:   stores.LessonStore,
		StudentStore:  stores.StudentStore,
		CategoryStore: stores.CategoryStore,
	})
	if err != nil {
		validationError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/day?date="+input.Date, http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// handleRoster is the student roster editor: GET lists students with their
// credit balances, POST replaces the roster wholesale.
func handleRoster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		students, err := stores.StudentStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		type rosterLine struct {
			Name          string `json:"name"`
			Purchased     int    `json:"purchased"`
			Used          int    `json:"used"`
			Remaining     int    `json:"remaining"`
			BoundCategory string `json:"boundCategory"`
			Note          string `json:"note"`
		}
		lines := make([]rosterLine, 0, len(students))
		for _, s := range students {
			credits, err := projections.QueryGetCredits(ctx,
				projections.GetCreditsQuery{StudentName: s.Name},
				projections.GetCreditsDeps{
					StudentStore: stores.StudentStore,
					LessonStore:  stores.LessonStore,
				})
			if err != nil {
				internalError(w, err)
				return
			}
			lines = append(lines, rosterLine{
				Name:          s.Name,
				Purchased:     credits.Purchased,
				Used:          credits.Used,
				Remaining:     credits.Remaining,
				BoundCategory: s.BoundCategory,
				Note:          s.Note,
			})
		}
		categories, err := projections.QueryCategoriesInUse(ctx, projections.GetAllowedCategoriesDeps{
			CategoryStore: stores.CategoryStore,
			LessonStore:   stores.LessonStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "roster.html", map[string]any{
				"Students":   lines,
				"Categories": categories,
			})
			return
		}
		writeJSON(w, lines)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.UpdateRosterInput{}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			names := r.Form["Name"]
			purchased := r.Form["Purchased"]
			bound := r.Form["BoundCategory"]
			notes := r.Form["Note"]
			for i := range names {
				row := orchestrators.RosterRow{Name: names[i]}
				if i < len(purchased) {
					row.Purchased = purchased[i]
				}
				if i < len(bound) {
					row.BoundCategory = bound[i]
				}
				if i < len(notes) {
					row.Note = notes[i]
				}
				input.Rows = append(input.Rows, row)
			}
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
		}

		err := orchestrators.ExecuteUpdateRoster(ctx, input,
			orchestrators.UpdateRosterDeps{StudentStore: stores.StudentStore})
		if err != nil {
			storeError(w, err)
			return
		}

		if isHTMLRequest(r) {
			http.Redirect(w, r, "/roster", http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// handleCategories is the category registry editor.
func handleCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		registered, err := stores.CategoryStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		offerable, err := projections.QueryCategoriesInUse(ctx, projections.GetAllowedCategoriesDeps{
			CategoryStore: stores.CategoryStore,
			LessonStore:   stores.LessonStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		names := make([]string, 0, len(registered))
		for _, c := range registered {
			names = append(names, c.Name)
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "categories.html", map[string]any{
				"Registered": names,
				"Offerable":  offerable,
			})
			return
		}
		writeJSON(w, map[string]any{"registered": names, "offerable": offerable})
		return
	}

	if r.Method == "POST" {
		input := orchestrators.UpdateCategoriesInput{}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.Names = r.Form["Name"]
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
		}

		err := orchestrators.ExecuteUpdateCategories(ctx, input,
			orchestrators.UpdateCategoriesDeps{CategoryStore: stores.CategoryStore})
		if err != nil {
			storeError(w, err)
			return
		}

		if isHTMLRequest(r) {
			http.Redirect(w, r, "/categories", http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// handleMonthGrid is the coach's whole-month pivot view.
func handleMonthGrid(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	month := r.URL.Query().Get("month")
	if month == "" {
		month = timeNow().Format("2006-01")
	}

	result, err := projections.QueryGetMonthGrid(ctx,
		projections.GetMonthGridQuery{Month: month},
		projections.GetMonthGridDeps{LessonStore: stores.LessonStore})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "month.html", map[string]any{
			"Month": result.Month,
			"Slots": result.Slots,
			"Rows":  result.Rows,
		})
		return
	}
	writeJSON(w, result)
}

// handleApproveRequest approves one pending booking request, creating the
// lesson with the category the coach picked.
func handleApproveRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	input := orchestrators.ApproveRequestInput{}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.RequestID = r.FormValue("RequestID")
		input.Category = r.FormValue("Category")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	err := orchestrators.ExecuteApproveRequest(ctx, input, orchestrators.ApproveRequestDeps{
		BookingStore: stores.BookingStore,
		LessonStore:  stores.LessonStore,
	})
	if err != nil {
		storeError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/requests", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeclineRequest declines one pending booking request.
func handleDeclineRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	id := ""
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		id = r.FormValue("RequestID")
	} else {
		var body struct {
			RequestID string
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		id = body.RequestID
	}

	err := orchestrators.ExecuteDeclineRequest(ctx, id,
		orchestrators.DeclineRequestDeps{BookingStore: stores.BookingStore})
	if err != nil {
		storeError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/requests", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleClearRequests empties the whole request queue.
func handleClearRequests(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	err := orchestrators.ExecuteClearRequests(r.Context(),
		orchestrators.ClearRequestsDeps{BookingStore: stores.BookingStore})
	if err != nil {
		storeError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/requests", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
