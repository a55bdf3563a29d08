package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-verification-nosql/internal/application/verification"
	"github.com/go-verification-nosql/internal/pkg/token"
)

// VerificationOptions configures how the handler issues tokens.
type VerificationOptions struct {
	ProviderID  string
	MaxAge      int // seconds; 0 uses the service default
	BaseURL     string
	ExposeToken bool // return the raw token in create responses (non-production)
	Deliver     verification.DeliverFunc
	NewToken    func() (string, error)
}

// VerificationHandler exposes the verification store to the auth frontend.
type VerificationHandler struct {
	svc  verification.Service
	opts VerificationOptions
}

func NewVerificationHandler(svc verification.Service, opts VerificationOptions) *VerificationHandler {
	if opts.ProviderID == "" {
		opts.ProviderID = "email"
	}
	if opts.NewToken == nil {
		opts.NewToken = token.NewVerificationToken
	}
	return &VerificationHandler{svc: svc, opts: opts}
}

// maxRequestMaxAge caps caller-chosen token lifetimes at 30 days.
const maxRequestMaxAge = 30 * 24 * 60 * 60

type createVerificationBody struct {
	Email       string `json:"email" validate:"required,email"`
	CallbackURL string `json:"callback_url" validate:"omitempty,url"`
	MaxAge      int    `json:"max_age" validate:"gte=0,max=2592000"`
}

type verifyBody struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

func (h *VerificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createVerificationBody
	if err := decode(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}
	raw, err := h.opts.NewToken()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not generate token")
		return
	}
	maxAge := body.MaxAge
	if maxAge == 0 {
		maxAge = h.opts.MaxAge
	}

	rec, err := h.svc.Create(r.Context(), body.Email, h.callbackLink(body.CallbackURL, body.Email, raw), raw, verification.Provider{
		ID:      h.opts.ProviderID,
		MaxAge:  maxAge,
		Deliver: h.opts.Deliver,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := VerificationEnvelope{Identifier: rec.Identifier, Expires: rec.Expires}
	if h.opts.ExposeToken {
		resp.Token = rec.Token
	}
	writeJSON(w, http.StatusCreated, resp)
}

// callbackLink appends email and token to the caller's callback URL, or to
// the provider's default callback under BaseURL.
func (h *VerificationHandler) callbackLink(callback, email, raw string) string {
	if callback == "" {
		callback = h.opts.BaseURL + "/api/auth/callback/" + h.opts.ProviderID
	}
	u, err := url.Parse(callback)
	if err != nil {
		return callback
	}
	q := u.Query()
	q.Set("email", email)
	q.Set("token", raw)
	u.RawQuery = q.Encode()
	return u.String()
}

func (h *VerificationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var body verifyBody
	if err := decode(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}
	rec, err := h.svc.Retrieve(r.Context(), body.Email, body.Token)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "no verification request for identifier")
		return
	}
	writeJSON(w, http.StatusOK, VerificationEnvelope{Identifier: rec.Identifier, Expires: rec.Expires, Token: rec.Token})
}

func (h *VerificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil || email == "" {
		writeError(w, http.StatusBadRequest, "invalid identifier")
		return
	}
	if err := h.svc.Delete(r.Context(), email); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "verification request deleted"})
}
