package server

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/tildaslashalef/codelens/internal/feedback"
	"github.com/tildaslashalef/codelens/internal/language"
	"github.com/tildaslashalef/codelens/internal/loggy"
	"github.com/tildaslashalef/codelens/internal/review"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").ParseFS(templateFS, "templates/index.html"))

// maxCodeBytes bounds request bodies
const maxCodeBytes = 1 << 20

// Handler serves the review page and the JSON API
type Handler struct {
	sessions *Sessions
	provider string
	model    string
}

// NewHandler creates the HTTP handlers
func NewHandler(sessions *Sessions, provider, model string) *Handler {
	return &Handler{sessions: sessions, provider: provider, model: model}
}

type pageData struct {
	SessionName  string
	Provider     string
	Model        string
	Languages    []language.Language
	State        review.State
	FeedbackHTML template.HTML
	Outline      []feedback.Block
	Notice       string
	ShowRaw      bool
}

// Index renders the page for the current session
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	h.render(w, r, sess, sess.Controller.State(), "", http.StatusOK)
}

// Review handles the form submission
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCodeBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	sess := h.sessions.Get(w, r)
	st, err := sess.Controller.Submit(r.Context(), r.PostFormValue("code"), r.PostFormValue("language"))
	if errors.Is(err, review.ErrReviewInProgress) {
		h.render(w, r, sess, st, review.MsgInProgress, http.StatusConflict)
		return
	}
	h.render(w, r, sess, st, "", http.StatusOK)
}

// Reset clears the session's outcome
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	st, err := sess.Controller.Reset()
	if err != nil {
		h.render(w, r, sess, st, review.UserMessage(err), http.StatusConflict)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, sess *Session, st review.State, notice string, status int) {
	data := pageData{
		SessionName: sess.Name,
		Provider:    h.provider,
		Model:       h.model,
		Languages:   language.All(),
		State:       st,
		Notice:      notice,
		ShowRaw:     r.URL.Query().Get("raw") == "1",
	}

	if st.Feedback != "" {
		html, err := feedback.HTML(st.Feedback)
		if err != nil {
			loggy.FromContext(r.Context()).Warn("Rendering feedback as raw text", "error", err)
			data.ShowRaw = true
		}
		data.FeedbackHTML = html
		data.Outline = feedback.Headings(st.Feedback)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		loggy.FromContext(r.Context()).Error("Rendering page failed", "error", err)
	}
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type languageResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

// Languages lists the registry
func (h *Handler) Languages(w http.ResponseWriter, _ *http.Request) {
	def := language.Default()
	all := language.All()
	out := make([]languageResponse, 0, len(all))
	for _, l := range all {
		out = append(out, languageResponse{ID: l.ID, Name: l.Name, Default: l.ID == def.ID})
	}
	writeJSON(w, http.StatusOK, out)
}

type reviewRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

type stateResponse struct {
	Phase     string           `json:"phase"`
	Language  string           `json:"language"`
	Feedback  string           `json:"feedback,omitempty"`
	Error     string           `json:"error,omitempty"`
	IsLoading bool             `json:"is_loading"`
	Outline   []feedback.Block `json:"outline,omitempty"`
}

func newStateResponse(st review.State) stateResponse {
	resp := stateResponse{
		Phase:     st.Phase.String(),
		Language:  st.Language.ID,
		Feedback:  st.Feedback,
		Error:     st.Err,
		IsLoading: st.IsLoading,
	}
	if st.Feedback != "" {
		resp.Outline = feedback.Blocks(st.Feedback)
	}
	return resp
}

// CreateReview is the JSON counterpart of the form. Requests without a
// session cookie get a one-off controller.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCodeBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, stateResponse{Phase: review.PhaseFailed.String(), Error: "Invalid JSON body"})
		return
	}
	switch strings.TrimSpace(req.Language) {
	case "":
		req.Language = language.Default().ID
	case autoLanguage:
		req.Language = detectLanguage(r, req.Code)
	}

	var ctrl *review.Controller
	if sess, ok := h.sessions.Lookup(r); ok {
		ctrl = sess.Controller
	} else {
		ctrl = h.sessions.NewController()
	}

	st, err := ctrl.Submit(r.Context(), req.Code, req.Language)
	writeJSON(w, statusFor(err), newStateResponse(st))
}

// autoLanguage asks the API to guess the language from the code
const autoLanguage = "auto"

func detectLanguage(r *http.Request, code string) string {
	lang, ok := language.Detect("", []byte(code))
	if !ok {
		lang = language.Default()
	}
	loggy.DebugContext(r.Context(), "Detected language", "language", lang.ID, "matched", ok)
	return lang.ID
}

// CurrentSession returns the state of the caller's session
func (h *Handler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Lookup(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, stateResponse{Phase: review.PhaseIdle.String(), Error: "No session"})
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(sess.Controller.State()))
}

func statusFor(err error) int {
	var backendErr *review.BackendError
	switch {
	case err == nil:
		return http.StatusOK
	case review.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, review.ErrReviewInProgress):
		return http.StatusConflict
	case errors.Is(err, review.ErrConfigurationMissing):
		return http.StatusServiceUnavailable
	case errors.As(err, &backendErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		loggy.Error("Encoding JSON response failed", "error", err)
	}
}
