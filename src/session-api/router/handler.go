package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jiaming2012/broker-session/src/session-api/models"
	"github.com/jiaming2012/broker-session/src/session-api/services"
)

type handler struct {
	session *services.BrokerSession
	hub     *EventHub
	decoder *schema.Decoder
}

func setResponse(response interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("SetResponse: encode: %w", err)
	}

	return nil
}

func setErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := NewErrorResponse(errType, err.Error())
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		return encodeErr
	}

	return nil
}

func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, models.ErrBrokerAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidBroker), errors.Is(err, models.ErrMissingAccountID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) handleSession(w http.ResponseWriter, r *http.Request) {
	if err := setResponse(h.session.Snapshot(), w); err != nil {
		log.Errorf("handleSession: failed to set response: %v", err)
	}
}

func (h *handler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	if err := setResponse(h.session.ConnectedAccounts(), w); err != nil {
		log.Errorf("handleListAccounts: failed to set response: %v", err)
	}
}

func (h *handler) handleAddAccount(w http.ResponseWriter, r *http.Request) {
	var req AddBrokerAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		setErrorResponse("handleAddAccount: failed to decode request", http.StatusBadRequest, err, w)
		return
	}

	account := req.ToBrokerAccount()
	if err := h.session.AddBrokerAccount(r.Context(), account); err != nil {
		setErrorResponse("handleAddAccount: failed to add account", statusCodeFor(err), err, w)
		return
	}

	if err := setResponse(account, w); err != nil {
		log.Errorf("handleAddAccount: failed to set response: %v", err)
	}
}

func (h *handler) handleRemoveAccount(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := models.NewAccountKey(models.BrokerName(vars["broker"]), vars["accountId"])

	removed, err := h.session.RemoveBrokerAccount(r.Context(), key.Broker, key.AccountID)
	if err != nil {
		setErrorResponse("handleRemoveAccount: failed to remove account", statusCodeFor(err), err, w)
		return
	}

	if !removed {
		err := fmt.Errorf("%w: %s", models.ErrBrokerAccountNotFound, key)
		setErrorResponse("handleRemoveAccount: account not found", http.StatusNotFound, err, w)
		return
	}

	if err := setResponse(RemoveBrokerAccountResponse{Removed: key}, w); err != nil {
		log.Errorf("handleRemoveAccount: failed to set response: %v", err)
	}
}

func (h *handler) handleSwitch(w http.ResponseWriter, r *http.Request) {
	var req SwitchBrokerRequest
	if err := h.decoder.Decode(&req, r.URL.Query()); err != nil {
		setErrorResponse("handleSwitch: failed to decode query", http.StatusBadRequest, err, w)
		return
	}

	if err := req.Broker.Validate(); err != nil {
		setErrorResponse("handleSwitch: invalid broker", http.StatusBadRequest, err, w)
		return
	}

	if err := h.session.SwitchBroker(r.Context(), req.Broker, req.AccountID); err != nil {
		setErrorResponse("handleSwitch: failed to switch broker", statusCodeFor(err), err, w)
		return
	}

	if err := setResponse(h.session.Snapshot(), w); err != nil {
		log.Errorf("handleSwitch: failed to set response: %v", err)
	}
}

func (h *handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.session.RefreshBrokerData(r.Context()); err != nil {
		setErrorResponse("handleRefresh: failed to refresh", statusCodeFor(err), err, w)
		return
	}

	if err := setResponse(h.session.Snapshot(), w); err != nil {
		log.Errorf("handleRefresh: failed to set response: %v", err)
	}
}

func (h *handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if err := setResponse(h.session.Status(), w); err != nil {
		log.Errorf("handleStatus: failed to set response: %v", err)
	}
}

func SetupHandler(router *mux.Router, session *services.BrokerSession, hub *EventHub) {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	h := &handler{
		session: session,
		hub:     hub,
		decoder: decoder,
	}

	// handleFunc enriches the http instrumentation with the route pattern
	handleFunc := func(pattern string, handlerFunc http.HandlerFunc, methods ...string) {
		router.Handle(pattern, otelhttp.WithRouteTag(pattern, handlerFunc)).Methods(methods...)
	}

	handleFunc("/session", h.handleSession, http.MethodGet)
	handleFunc("/accounts", h.handleListAccounts, http.MethodGet)
	handleFunc("/accounts", h.handleAddAccount, http.MethodPost)
	handleFunc("/accounts/{broker}/{accountId}", h.handleRemoveAccount, http.MethodDelete)
	handleFunc("/switch", h.handleSwitch, http.MethodPost)
	handleFunc("/refresh", h.handleRefresh, http.MethodPost)
	handleFunc("/status", h.handleStatus, http.MethodGet)

	if hub != nil {
		handleFunc("/events", hub.ServeWS, http.MethodGet)
	}
}

// NewHTTPHandler returns the full API wrapped in otelhttp instrumentation.
func NewHTTPHandler(session *services.BrokerSession, hub *EventHub) http.Handler {
	router := mux.NewRouter()
	SetupHandler(router, session, hub)

	return otelhttp.NewHandler(router, "broker-session")
}
