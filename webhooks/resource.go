package webhooks

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"sync"
)

// payloadDecoders is the closed mapping from resource-type discriminator to
// the decode-and-broadcast step for its concrete payload type. A resource
// type absent from this table is logged and dropped without failing the HTTP
// response.
var payloadDecoders = map[string]func(*Resource, *Metadata){
	ResourceTypePing:                     (*Resource).dispatchPing,
	ResourceTypeIncident:                 (*Resource).dispatchIncident,
	ResourceTypeIncidentNote:             (*Resource).dispatchIncidentNote,
	ResourceTypeIncidentConferenceBridge: (*Resource).dispatchIncidentConferenceBridge,
	ResourceTypeIncidentFieldValues:      (*Resource).dispatchIncidentFieldValues,
	ResourceTypeIncidentStatusUpdate:     (*Resource).dispatchIncidentStatusUpdate,
	ResourceTypeIncidentResponder:        (*Resource).dispatchIncidentResponder,
	ResourceTypeIncidentWorkflowInstance: (*Resource).dispatchIncidentWorkflowInstance,
	ResourceTypeService:                  (*Resource).dispatchService,
}

// Resource authenticates and dispatches inbound PagerDuty webhook deliveries.
// It is an http.Handler; mount it at the path registered with PagerDuty.
//
// Handlers registered before a request arrives are guaranteed to see it;
// registering concurrently with an in-flight dispatch has unspecified effect
// on that dispatch. Handlers for one delivery run sequentially in
// registration order, and panics from handlers are not recovered here.
type Resource struct {
	secrets [][]byte
	logger  *slog.Logger

	mu                               sync.Mutex
	pingHandlers                     []func(*Ping)
	incidentHandlers                 []func(*Incident)
	incidentNoteHandlers             []func(*IncidentNote)
	incidentConferenceBridgeHandlers []func(*IncidentConferenceBridge)
	incidentFieldValuesHandlers      []func(*IncidentFieldValues)
	incidentStatusUpdateHandlers     []func(*IncidentStatusUpdate)
	incidentResponderHandlers        []func(*IncidentResponder)
	incidentWorkflowInstanceHandlers []func(*IncidentWorkflowInstance)
	serviceHandlers                  []func(*Service)
}

// NewResource creates a webhook receiver that accepts deliveries signed with
// any of the given shared secrets. Supplying more than one secret supports
// rotation: old and new secrets verify simultaneously. At least one secret is
// mandatory.
func NewResource(secrets ...string) (*Resource, error) {
	if len(secrets) == 0 {
		return nil, errors.New("at least one PagerDuty webhook secret must be supplied")
	}
	secretBytes := make([][]byte, len(secrets))
	for i, s := range secrets {
		secretBytes[i] = []byte(s)
	}
	return &Resource{
		secrets: secretBytes,
		logger:  slog.Default().With("component", "webhooks"),
	}, nil
}

// SetLogger replaces the logger used for dispatch warnings and errors.
func (r *Resource) SetLogger(logger *slog.Logger) {
	r.logger = logger
}

// OnPing registers a handler for Ping payloads.
func (r *Resource) OnPing(h func(*Ping)) {
	r.mu.Lock()
	r.pingHandlers = append(r.pingHandlers, h)
	r.mu.Unlock()
}

// OnIncident registers a handler for Incident payloads.
func (r *Resource) OnIncident(h func(*Incident)) {
	r.mu.Lock()
	r.incidentHandlers = append(r.incidentHandlers, h)
	r.mu.Unlock()
}

// OnIncidentNote registers a handler for IncidentNote payloads.
func (r *Resource) OnIncidentNote(h func(*IncidentNote)) {
	r.mu.Lock()
	r.incidentNoteHandlers = append(r.incidentNoteHandlers, h)
	r.mu.Unlock()
}

// OnIncidentConferenceBridge registers a handler for IncidentConferenceBridge
// payloads.
func (r *Resource) OnIncidentConferenceBridge(h func(*IncidentConferenceBridge)) {
	r.mu.Lock()
	r.incidentConferenceBridgeHandlers = append(r.incidentConferenceBridgeHandlers, h)
	r.mu.Unlock()
}

// OnIncidentFieldValues registers a handler for IncidentFieldValues payloads.
func (r *Resource) OnIncidentFieldValues(h func(*IncidentFieldValues)) {
	r.mu.Lock()
	r.incidentFieldValuesHandlers = append(r.incidentFieldValuesHandlers, h)
	r.mu.Unlock()
}

// OnIncidentStatusUpdate registers a handler for IncidentStatusUpdate
// payloads.
func (r *Resource) OnIncidentStatusUpdate(h func(*IncidentStatusUpdate)) {
	r.mu.Lock()
	r.incidentStatusUpdateHandlers = append(r.incidentStatusUpdateHandlers, h)
	r.mu.Unlock()
}

// OnIncidentResponder registers a handler for IncidentResponder payloads.
func (r *Resource) OnIncidentResponder(h func(*IncidentResponder)) {
	r.mu.Lock()
	r.incidentResponderHandlers = append(r.incidentResponderHandlers, h)
	r.mu.Unlock()
}

// OnIncidentWorkflowInstance registers a handler for IncidentWorkflowInstance
// payloads.
func (r *Resource) OnIncidentWorkflowInstance(h func(*IncidentWorkflowInstance)) {
	r.mu.Lock()
	r.incidentWorkflowInstanceHandlers = append(r.incidentWorkflowInstanceHandlers, h)
	r.mu.Unlock()
}

// OnService registers a handler for Service payloads.
func (r *Resource) OnService(h func(*Service)) {
	r.mu.Lock()
	r.serviceHandlers = append(r.serviceHandlers, h)
	r.mu.Unlock()
}

// ServeHTTP implements the webhook endpoint contract: 405 for non-POST, 415
// for non-JSON content types, 403 for a missing or invalid signature, and 204
// once the delivery is authenticated. The 204 is committed before payload
// handling begins; decoding problems after that point are logged only.
func (r *Resource) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !hasJSONContentType(req) {
		w.WriteHeader(http.StatusUnsupportedMediaType)
		return
	}

	// Signature verification needs the complete exact byte sequence, so the
	// body is buffered rather than streamed.
	body, err := io.ReadAll(req.Body)
	if err != nil {
		r.logger.Error("failed to read webhook request body", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if !r.verifySignature(body, req.Header.Get(SignatureHeader)) {
		r.logger.Warn("invalid signature, ignoring webhook that was spoofing PagerDuty")
		w.WriteHeader(http.StatusForbidden)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	r.dispatch(body)
}

// dispatch parses the envelope, resolves the concrete payload type from the
// resource-type discriminator, and broadcasts the decoded payload.
func (r *Resource) dispatch(body []byte) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || env.Event == nil {
		r.logger.Error("failed to parse webhook envelope", "error", err)
		return
	}
	meta := env.Event

	decode, ok := payloadDecoders[meta.ResourceType]
	if !ok {
		r.logger.Warn("unrecognized resource type received in PagerDuty webhook, ignoring",
			"resource_type", meta.ResourceType)
		return
	}

	r.logger.Debug("received webhook", "event_type", meta.EventType)
	decode(r, meta)
}

// decodePayload re-parses the envelope's opaque data block as the concrete
// payload type, then clears the metadata's copy of the block: it has been
// fully consumed and should not be retained twice.
func (r *Resource) decodePayload(meta *Metadata, payload any) bool {
	if err := json.Unmarshal(meta.Data, payload); err != nil {
		r.logger.Error("failed to decode webhook payload",
			"resource_type", meta.ResourceType, "error", err)
		return false
	}
	meta.Data = nil
	return true
}

func (r *Resource) dispatchPing(meta *Metadata) {
	var p Ping
	if !r.decodePayload(meta, &p) {
		return
	}
	p.Metadata = meta
	r.mu.Lock()
	handlers := r.pingHandlers
	r.mu.Unlock()
	for _, h := range handlers {
		h(&p)
	}
}

func (r *Resource) dispatchIncident(meta *Metadata) {
	var p Incident
	if !r.decodePayload(meta, &p) {
		return
	}
	p.Metadata = meta
	r.mu.Lock()
	handlers := r.incidentHandlers
	r.mu.Unlock()
	for _, h := range handlers {
		h(&p)
	}
}

func (r *Resource) dispatchIncidentNote(meta *Metadata) {
	var p IncidentNote
	if !r.decodePayload(meta, &p) {
		return
	}
	p.Metadata = meta
	r.mu.Lock()
	handlers := r.incidentNoteHandlers
	r.mu.Unlock()
	for _, h := range handlers {
		h(&p)
	}
}

func (r *Resource) dispatchIncidentConferenceBridge(meta *Metadata) {
	var p IncidentConferenceBridge
	if !r.decodePayload(meta, &p) {
		return
	}
	p.Metadata = meta
	r.mu.Lock()
	handlers := r.incidentConferenceBridgeHandlers
	r.mu.Unlock()
	for _, h := range handlers {
		h(&p)
	}
}

func (r *Resource) dispatchIncidentFieldValues(meta *Metadata) {
	var p IncidentFieldValues
	if !r.decodePayload(meta, &p) {
		return
	}
	p.Metadata = meta
	r.mu.Lock()
	handlers := r.incidentFieldValuesHandlers
	r.mu.Unlock()
	for _, h := range handlers {
		h(&p)
	}
}

func (r *Resource) dispatchIncidentStatusUpdate(meta *Metadata) {
	var p IncidentStatusUpdate
	if !r.decodePayload(meta, &p) {
		return
	}
	p.Metadata = meta
	r.mu.Lock()
	handlers := r.incidentStatusUpdateHandlers
	r.mu.Unlock()
	for _, h := range handlers {
		h(&p)
	}
}

func (r *Resource) dispatchIncidentResponder(meta *Metadata) {
	var p IncidentResponder
	if !r.decodePayload(meta, &p) {
		return
	}
	p.Metadata = meta
	r.mu.Lock()
	handlers := r.incidentResponderHandlers
	r.mu.Unlock()
	for _, h := range handlers {
		h(&p)
	}
}

func (r *Resource) dispatchIncidentWorkflowInstance(meta *Metadata) {
	var p IncidentWorkflowInstance
	if !r.decodePayload(meta, &p) {
		return
	}
	p.Metadata = meta
	r.mu.Lock()
	handlers := r.incidentWorkflowInstanceHandlers
	r.mu.Unlock()
	for _, h := range handlers {
		h(&p)
	}
}

func (r *Resource) dispatchService(meta *Metadata) {
	var p Service
	if !r.decodePayload(meta, &p) {
		return
	}
	p.Metadata = meta
	r.mu.Lock()
	handlers := r.serviceHandlers
	r.mu.Unlock()
	for _, h := range handlers {
		h(&p)
	}
}

func hasJSONContentType(req *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
