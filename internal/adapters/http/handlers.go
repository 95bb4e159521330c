package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"gymdesk/internal/adapters/http/middleware"
	bookingStore "gymdesk/internal/adapters/storage/booking"
	studentStore "gymdesk/internal/adapters/storage/student"
	"gymdesk/internal/adapters/storage/table"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/booking"
	"gymdesk/internal/domain/lesson"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// storeError maps known sentinel errors to HTTP statuses. A stale-table save
// is a concurrent-edit conflict the client resolves by reloading, so it must
// surface as 409 rather than a generic 500.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, table.ErrStaleTable):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, booking.ErrNotPending):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, bookingStore.ErrNotFound), errors.Is(err, studentStore.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		internalError(w, err)
	}
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// TemplatesDir locates the page templates. Tests point it at a relative copy.
var TemplatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func isFormRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	coach := middleware.IsCoach(r.Context())

	funcMap := template.FuncMap{
		"isCoach":   func() bool { return coach },
		"csrfToken": func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"categoryColor": projections.ColorFor,
		"timeSlots":     func() []string { return lesson.TimeSlots },
	}

	layoutPath := filepath.Join(TemplatesDir, "layout.html")
	pagePath := filepath.Join(TemplatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// handleSchedule serves the public day view: the lessons booked on one date,
// slot-ordered. Defaults to today when no date is given.
func handleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/schedule" {
		http.NotFound(w, r)
		return
	}
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

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

	if isHTMLRequest(r) {
		renderTemplate(w, r, "schedule.html", map[string]any{
			"Date":    result.Date,
			"Lessons": result.Lessons,
		})
		return
	}
	writeJSON(w, result)
}

// handleCalendar serves the month calendar: JSON events for API consumers,
// an HTML page otherwise.
func handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	month := r.URL.Query().Get("month")
	if month == "" {
		month = timeNow().Format("2006-01")
	}

	events, err := projections.QueryGetCalendar(ctx,
		projections.GetCalendarQuery{Month: month},
		projections.GetCalendarDeps{LessonStore: stores.LessonStore})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "calendar.html", map[string]any{
			"Month":  month,
			"Events": events,
		})
		return
	}
	writeJSON(w, events)
}

// handleCredits serves the public credit lookup by student name.
func handleCredits(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	name := strings.TrimSpace(r.URL.Query().Get("student"))
	data := map[string]any{"Student": name}
	if name != "" {
		credits, err := projections.QueryGetCredits(ctx,
			projections.GetCreditsQuery{StudentName: name},
			projections.GetCreditsDeps{
				StudentStore: stores.StudentStore,
				LessonStore:  stores.LessonStore,
			})
		if err != nil {
			internalError(w, err)
			return
		}
		data["Credits"] = credits
		data["Looked"] = true

		if !isHTMLRequest(r) {
			writeJSON(w, map[string]any{
				"student":   name,
				"purchased": credits.Purchased,
				"used":      credits.Used,
				"remaining": credits.Remaining,
			})
			return
		}
	} else if !isHTMLRequest(r) {
		http.Error(w, "student parameter is required", http.StatusBadRequest)
		return
	}

	renderTemplate(w, r, "credits.html", data)
}

// handleRequests handles the booking request queue: POST is the public
// submission form; GET lists pending requests for the coach.
func handleRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		if !middleware.IsCoach(ctx) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		pending, err := stores.BookingStore.ListPending(ctx)
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
			renderTemplate(w, r, "requests.html", map[string]any{
				"Pending":    pending,
				"Categories": categories,
			})
			return
		}
		writeJSON(w, pending)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.SubmitRequestInput{}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.TargetDate = r.FormValue("TargetDate")
			input.Time = r.FormValue("Time")
			input.Requester = r.FormValue("Requester")
			input.Note = r.FormValue("Note")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
		}

		result, err := orchestrators.ExecuteSubmitRequest(ctx, input, orchestrators.SubmitRequestDeps{
			BookingStore: stores.BookingStore,
			EmailSender:  emailSender,
			CoachEmail:   coachEmailAddress,
		})
		if err != nil {
			if errors.Is(err, booking.ErrEmptyRequester) || errors.Is(err, booking.ErrEmptyTarget) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			storeError(w, err)
			return
		}

		if isHTMLRequest(r) {
			http.Redirect(w, r, "/?date="+result.Request.TargetDate, http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]string{"id": result.Request.ID, "status": result.Request.Status})
		return
	}

	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// handleLogin is the coach passcode gate.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		renderTemplate(w, r, "login.html", map[string]any{})
		return
	}

	if r.Method == "POST" {
		passcode := ""
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			passcode = r.FormValue("Passcode")
		} else {
			var body struct {
				Passcode string
			}
			if err := strictDecode(r, &body); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			passcode = body.Passcode
		}

		err := orchestrators.ExecuteCoachLogin(ctx, passcode,
			orchestrators.CoachLoginDeps{PasscodeHash: coachPasscodeHash})
		if err != nil {
			slog.Warn("login_failed", "ip", r.RemoteAddr)
			if isHTMLRequest(r) {
				renderTemplate(w, r, "login.html", map[string]any{"Error": "Incorrect passcode"})
				return
			}
			http.Error(w, "incorrect passcode", http.StatusUnauthorized)
			return
		}

		token, err := sessions.Create()
		if err != nil {
			internalError(w, err)
			return
		}
		middleware.SetSessionCookie(w, token)
		slog.Info("coach_login")

		if isHTMLRequest(r) {
			http.Redirect(w, r, "/day", http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// handleLogout drops the coach session.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// registerRoutes attaches all handlers to the mux. Coach-only routes are
// wrapped with RequireCoach; mixed-access routes gate inside the handler.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", handleSchedule)
	mux.HandleFunc("/schedule", handleSchedule)
	mux.HandleFunc("/calendar", handleCalendar)
	mux.HandleFunc("/credits", handleCredits)
	mux.HandleFunc("/requests", handleRequests)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)

	coach := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireCoach(h)
	}
	mux.Handle("/day", coach(handleDay))
	mux.Handle("/lessons", coach(handleAddLesson))
	mux.Handle("/roster", coach(handleRoster))
	mux.Handle("/categories", coach(handleCategories))
	mux.Handle("/month", coach(handleMonthGrid))
	mux.Handle("/requests/approve", coach(handleApproveRequest))
	mux.Handle("/requests/decline", coach(handleDeclineRequest))
	mux.Handle("/requests/clear", coach(handleClearRequests))
	mux.Handle("/backup/export", coach(handleBackupExport))
	mux.Handle("/backup/restore", coach(handleBackupRestore))
	mux.Handle("/backup/reset", coach(handleBackupReset))
}
