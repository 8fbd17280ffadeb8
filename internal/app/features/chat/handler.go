// Package chat is the travel assistant: each visitor message is logged to
// the conversation, answered by the LLM with the live catalog in the system
// prompt, and scanned for contact details that turn the session into a lead.
package chat

import (
	"context"
	"errors"
	"net/http"
	"strings"

	chatstore "github.com/dalemusser/stratatrips/internal/app/store/chats"
	destinationstore "github.com/dalemusser/stratatrips/internal/app/store/destinations"
	packagestore "github.com/dalemusser/stratatrips/internal/app/store/packages"
	"github.com/dalemusser/stratatrips/internal/app/system/capabilities"
	"github.com/dalemusser/stratatrips/internal/app/system/catalogcache"
	"github.com/dalemusser/stratatrips/internal/app/system/contact"
	"github.com/dalemusser/stratatrips/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatrips/internal/app/system/llm"
	"github.com/dalemusser/stratatrips/internal/app/system/mailer"
	"github.com/dalemusser/stratatrips/internal/app/system/reqval"
	"github.com/dalemusser/stratatrips/internal/app/system/timeouts"
	"github.com/dalemusser/stratatrips/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Admin list bounds.
const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Completer produces the assistant reply.
type Completer interface {
	Complete(ctx context.Context, system string, history []llm.Message) (string, error)
}

// Notifier emails the agency when a visitor leaves contact details.
type Notifier interface {
	ChatCallback(ctx context.Context, data mailer.ChatCallbackData) error
}

// Handler serves the chat endpoints.
type Handler struct {
	chats        *chatstore.Store
	packages     *packagestore.Store
	destinations *destinationstore.Store
	cache        *catalogcache.Cache
	llm          Completer
	notifier     Notifier
	agency       Agency
	logger       *zap.Logger
	enabled      bool

	background func(func())
}

// Deps groups the collaborators of a Handler. Cache and Notifier may be nil.
// Chat answers only when Capabilities.Chat is set and LLM is non-nil.
type Deps struct {
	DB           *mongo.Database
	Cache        *catalogcache.Cache
	LLM          Completer
	Notifier     Notifier
	Agency       Agency
	Capabilities capabilities.Set
	Logger       *zap.Logger
}

// NewHandler creates a chat Handler.
func NewHandler(d Deps) *Handler {
	return &Handler{
		chats:        chatstore.New(d.DB),
		packages:     packagestore.New(d.DB),
		destinations: destinationstore.New(d.DB),
		cache:        d.Cache,
		llm:          d.LLM,
		notifier:     d.Notifier,
		agency:       d.Agency,
		logger:       d.Logger,
		enabled:      d.Capabilities.Chat && d.LLM != nil,
		background:   func(f func()) { go f() },
	}
}

// Routes mounts POST /api/chat.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Send)
	return r
}

// AdminRoutes mounts /api/admin/chats.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.AdminList)
	r.Get("/{id}", h.AdminGet)
	return r
}

type sendRequest struct {
	SessionID string `json:"sessionId" validate:"max=100"`
	Message   string `json:"message" validate:"required,notblank,max=2000"`
}

type sendResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
}

// Send handles POST /api/chat. An empty sessionId starts a new conversation
// and the issued id is returned for the client to reuse.
//
// The read of the history and the assistant append are not atomic, so two
// concurrent messages in one session may each be answered without seeing
// the other.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := jsonutil.Decode(w, r, &req); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Message = htmlsanitize.StripTags(req.Message)
	if details := reqval.Struct(req); details != nil {
		jsonutil.ValidationError(w, details)
		return
	}
	if !h.enabled {
		jsonutil.ServiceUnavailable(w, "AI chat is not configured")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	ctx := r.Context()
	if _, err := h.chats.GetOrCreate(ctx, req.SessionID); err != nil {
		h.fail(w, "load conversation", req.SessionID, err)
		return
	}
	if err := h.chats.AppendMessage(ctx, req.SessionID, models.ChatMessage{
		Role:    models.ChatRoleUser,
		Content: req.Message,
	}); err != nil {
		h.fail(w, "store user message", req.SessionID, err)
		return
	}
	conv, err := h.chats.Get(ctx, req.SessionID)
	if err != nil || conv == nil {
		if err == nil {
			err = errors.New("conversation vanished")
		}
		h.fail(w, "reload conversation", req.SessionID, err)
		return
	}

	reply, err := h.llm.Complete(ctx, BuildPrompt(h.agency, h.catalog(ctx)), history(conv.Messages))
	if err != nil {
		h.fail(w, "llm completion", req.SessionID, err)
		return
	}

	if found := contact.Extract(req.Message); found.Found() {
		h.captureLead(ctx, req.SessionID, req.Message, found)
	}

	if err := h.chats.AppendMessage(ctx, req.SessionID, models.ChatMessage{
		Role:    models.ChatRoleAssistant,
		Content: reply,
	}); err != nil {
		h.fail(w, "store assistant reply", req.SessionID, err)
		return
	}

	jsonutil.OK(w, sendResponse{Reply: reply, SessionID: req.SessionID})
}

func (h *Handler) fail(w http.ResponseWriter, step, sessionID string, err error) {
	h.logger.Error("chat turn failed",
		zap.String("step", step),
		zap.String("session_id", sessionID),
		zap.Error(err))
	jsonutil.InternalError(w, "Failed to get response")
}

// catalog loads the prompt snapshot. A store failure leaves that part of
// the catalog empty rather than failing the turn.
func (h *Handler) catalog(ctx context.Context) Catalog {
	var cat Catalog
	pkgs, err := catalogcache.Load(ctx, h.cache, catalogcache.KeyPackages, loadPackageSummaries(h.packages))
	if err != nil {
		h.logger.Warn("chat catalog: packages unavailable", zap.Error(err))
	}
	cat.Packages = pkgs

	dests, err := catalogcache.Load(ctx, h.cache, catalogcache.KeyDestinations, loadDestinationNames(h.destinations))
	if err != nil {
		h.logger.Warn("chat catalog: destinations unavailable", zap.Error(err))
	}
	cat.Destinations = dests
	return cat
}

// captureLead marks the conversation as a lead and emails the agency. Both
// steps are best effort; the visitor still gets the reply.
func (h *Handler) captureLead(ctx context.Context, sessionID, message string, c contact.Contact) {
	if err := h.chats.MarkLead(ctx, sessionID, chatstore.Lead{
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
	}); err != nil {
		h.logger.Warn("chat lead not recorded", zap.String("session_id", sessionID), zap.Error(err))
	}
	h.logger.Info("chat lead captured",
		zap.String("session_id", sessionID),
		zap.Bool("has_phone", c.Phone != ""),
		zap.Bool("has_email", c.Email != ""))

	if h.notifier == nil {
		return
	}
	data := mailer.ChatCallbackData{
		AppName:     h.agency.Name,
		SessionID:   sessionID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		LastMessage: message,
	}
	h.background(func() {
		mailCtx, cancel := timeouts.WithTimeout(context.Background(), timeouts.Mail(), h.logger, "chat callback email")
		defer cancel()
		if err := h.notifier.ChatCallback(mailCtx, data); err != nil {
			h.logger.Warn("chat callback email failed", zap.String("session_id", sessionID), zap.Error(err))
		}
	})
}

func history(msgs []models.ChatMessage) []llm.Message {
	out := make([]llm.Message, 0, len(msgs))
	for _, m := range msgs {
		role := llm.RoleUser
		if m.Role == models.ChatRoleAssistant {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: m.Content})
	}
	return out
}

// AdminList handles GET /api/admin/chats[?page=&limit=], most recent first.
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	paging, details := reqval.Page(r.URL.Query(), defaultListLimit, maxListLimit)
	if details != nil {
		jsonutil.ValidationError(w, details)
		return
	}
	list, err := h.chats.List(r.Context(), paging.Page, paging.Limit)
	if err != nil {
		jsonutil.StoreError(w, r, h.logger, "Conversation", err)
		return
	}
	jsonutil.OK(w, map[string]any{"conversations": list, "page": paging.Page, "limit": paging.Limit})
}

// AdminGet handles GET /api/admin/chats/{id}.
func (h *Handler) AdminGet(w http.ResponseWriter, r *http.Request) {
	conv, err := h.chats.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.StoreError(w, r, h.logger, "Conversation", err)
		return
	}
	if conv == nil {
		jsonutil.NotFound(w, "Conversation not found")
		return
	}
	jsonutil.OK(w, map[string]any{"conversation": conv})
}
