package shipsync

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/laops/shipsync/internal/clock"
)

const (
	searchResourcePath = "search"
	createResourcePath = "shipments"

	headerAPIKey      = "x-api-key"
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"

	defaultHTTPTimeout = 30 * time.Second
)

// Client synchronizes one shipment record with the remote shipment API.
//
// SyncShipment always produces an Outcome: transport failures, non-2xx
// statuses and unparsable bodies are recorded in the Outcome, not returned
// as errors. The error return is reserved for misuse, such as a nil input.
type Client interface {
	SyncShipment(ctx context.Context, params *SyncShipmentInput) (*SyncShipmentOutput, error)
}

// ShipmentResolver derives the identifier of the shipment an update
// targets. The exact derivation is a business rule of the remote system;
// the default resolver searches the API by purchase order.
type ShipmentResolver interface {
	ResolveShipment(ctx context.Context, record *ShipmentRecord) (*ResolveShipmentOutput, error)
}

// ResolveShipmentOutput is the result of a shipment lookup. ShipmentID is
// empty when no shipment matched; the lookup exchange is retained so a
// failed resolution can still be reported in full.
type ResolveShipmentOutput struct {
	ShipmentID   string
	RequestJSON  string
	HTTPStatus   int
	ResponseJSON string
}

// ClientOptions defines configuration options for the shipment client.
// Signer, Clock and Resolver are also seams for tests.
type ClientOptions struct {
	// HTTPClient performs the outbound calls. Defaults to a client with a
	// 30 second timeout.
	HTTPClient *http.Client
	// Signer authenticates outbound requests. Defaults to a SigV4Signer
	// built from the run configuration.
	Signer RequestSigner
	// Resolver locates the shipment an update targets. Defaults to a
	// search by purchase order against the same API.
	Resolver ShipmentResolver
	// Clock supplies the request signing time.
	Clock clock.Clock
	// Logger receives one entry per API call. Defaults to a no-op logger.
	Logger *zap.Logger
}

// WithHTTPClient is an option function to set a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.HTTPClient = httpClient
	}
}

// WithSigner is an option function to set a custom request signer.
func WithSigner(signer RequestSigner) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.Signer = signer
	}
}

// WithShipmentResolver is an option function to set a custom strategy for
// deriving the shipment identifier an update targets.
func WithShipmentResolver(resolver ShipmentResolver) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.Resolver = resolver
	}
}

// WithLogger is an option function to set the logger used by the client.
func WithLogger(logger *zap.Logger) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.Logger = logger
	}
}

// NewFromConfig creates a shipment client for one batch run.
func NewFromConfig(ctx context.Context, cfg Config, optFns ...func(*ClientOptions)) (*ClientImpl, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := &ClientOptions{
		HTTPClient: &http.Client{Timeout: defaultHTTPTimeout},
		Clock:      &clock.RealClock{},
		Logger:     zap.NewNop(),
	}
	for _, opt := range optFns {
		opt(o)
	}
	if o.Signer == nil {
		signer, err := NewSigV4Signer(ctx, cfg)
		if err != nil {
			return nil, err
		}
		o.Signer = signer
	}
	c := &ClientImpl{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/") + "/",
		apiKey:  cfg.APIKey,
		http:    o.HTTPClient,
		signer:  o.Signer,
		clock:   o.Clock,
		logger:  o.Logger,
	}
	c.resolver = o.Resolver
	if c.resolver == nil {
		c.resolver = &searchShipmentResolver{client: c}
	}
	return c, nil
}

// ClientImpl is a concrete implementation of the Client interface.
// Always use NewFromConfig to create an instance.
type ClientImpl struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	signer   RequestSigner
	resolver ShipmentResolver
	clock    clock.Clock
	logger   *zap.Logger
}

// SyncShipmentInput represents the input parameters for synchronizing one
// shipment record.
type SyncShipmentInput struct {
	// Record is the shipment record to synchronize. It must have passed
	// ShipmentRecord.Validate.
	Record *ShipmentRecord
	// Operation selects the API operation performed for the record.
	Operation OperationType
}

// SyncShipmentOutput represents the result of a synchronization attempt.
type SyncShipmentOutput struct {
	// Outcome is always populated, on failure as well as success.
	Outcome *Outcome
}

func (c *ClientImpl) SyncShipment(ctx context.Context, params *SyncShipmentInput) (*SyncShipmentOutput, error) {
	if params == nil || params.Record == nil {
		return nil, RecordNotProvidedError{}
	}
	var outcome *Outcome
	switch params.Operation {
	case OperationTypeCreate:
		outcome = c.createShipment(ctx, params.Record)
	case OperationTypeUpdate:
		outcome = c.updateShipment(ctx, params.Record)
	default:
		return nil, InvalidOperationTypeError{Value: string(params.Operation)}
	}
	return &SyncShipmentOutput{Outcome: outcome}, nil
}

func (c *ClientImpl) createShipment(ctx context.Context, record *ShipmentRecord) *Outcome {
	outcome := &Outcome{PurchaseOrder: record.PurchaseOrder}
	payload, err := buildCreatePayload(record)
	if err != nil {
		outcome.ErrorMessage = err.Error()
		return outcome
	}
	outcome.RequestJSON = payload
	res, err := c.callAPI(ctx, http.MethodPost, createResourcePath, payload)
	if err != nil {
		outcome.ErrorMessage = err.Error()
		return outcome
	}
	c.fillFromResponse(outcome, res)
	return outcome
}

func (c *ClientImpl) updateShipment(ctx context.Context, record *ShipmentRecord) *Outcome {
	outcome := &Outcome{PurchaseOrder: record.PurchaseOrder}
	resolved, err := c.resolver.ResolveShipment(ctx, record)
	if err != nil {
		outcome.ErrorMessage = err.Error()
		return outcome
	}
	if resolved.ShipmentID == "" {
		outcome.RequestJSON = resolved.RequestJSON
		outcome.HTTPStatus = resolved.HTTPStatus
		outcome.ResponseJSON = resolved.ResponseJSON
		outcome.ErrorMessage = fmt.Sprintf("shipment was not found for purchase order %s", record.PurchaseOrder)
		return outcome
	}
	payload, err := buildUpdatePayload(record)
	if err != nil {
		outcome.ErrorMessage = err.Error()
		return outcome
	}
	outcome.RequestJSON = payload
	res, err := c.callAPI(ctx, http.MethodPatch, resolved.ShipmentID, payload)
	if err != nil {
		outcome.ErrorMessage = err.Error()
		return outcome
	}
	c.fillFromResponse(outcome, res)
	if outcome.ShipmentNumber == "" && outcome.Succeeded() {
		outcome.ShipmentNumber = resolved.ShipmentID
	}
	return outcome
}

// apiResponse captures one HTTP exchange with the shipment API.
type apiResponse struct {
	Status int
	Body   string
}

func (c *ClientImpl) callAPI(ctx context.Context, method, resourcePath, payload string) (*apiResponse, error) {
	url := c.baseURL + resourcePath
	req, err := http.NewRequestWithContext(ctx, method, url, strings.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set(headerContentType, contentTypeJSON)
	req.Header.Set(headerAPIKey, c.apiKey)
	sum := sha256.Sum256([]byte(payload))
	if err := c.signer.SignHTTP(ctx, req, hex.EncodeToString(sum[:]), c.clock.Now()); err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	c.logger.Info("shipment API call",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode))
	return &apiResponse{Status: resp.StatusCode, Body: string(body)}, nil
}

func (c *ClientImpl) fillFromResponse(outcome *Outcome, res *apiResponse) {
	outcome.HTTPStatus = res.Status
	outcome.ResponseJSON = res.Body
	if res.Status < http.StatusOK || res.Status >= http.StatusMultipleChoices {
		outcome.ErrorMessage = errorMessageFromResponse(res)
		return
	}
	shipmentID, reason := extractShipmentFields(res.Body)
	outcome.ShipmentNumber = shipmentID
	outcome.NotificationReason = reason
}

type searchShipmentResolver struct {
	client *ClientImpl
}

func (r *searchShipmentResolver) ResolveShipment(ctx context.Context, record *ShipmentRecord) (*ResolveShipmentOutput, error) {
	payload, err := json.Marshal(searchShipmentPayload{PurchaseOrder: record.PurchaseOrder})
	if err != nil {
		return nil, err
	}
	res, err := r.client.callAPI(ctx, http.MethodPost, searchResourcePath, string(payload))
	if err != nil {
		return nil, err
	}
	out := &ResolveShipmentOutput{
		RequestJSON:  string(payload),
		HTTPStatus:   res.Status,
		ResponseJSON: res.Body,
	}
	if res.Status >= http.StatusOK && res.Status < http.StatusMultipleChoices {
		out.ShipmentID, _ = extractShipmentFields(res.Body)
	}
	return out, nil
}

type shipmentDates struct {
	DeliveryAppointmentDate string `json:"delivery_appointment_date"`
	DeliveryTimeFrom        string `json:"delivery_time_from"`
	DeliveryAppointment     string `json:"delivery_appointment"`
}

type createShipmentPayload struct {
	PurchaseOrder string        `json:"purchase_order"`
	Dates         shipmentDates `json:"dates"`
}

type updateShipmentPayload struct {
	Dates shipmentDates `json:"dates"`
}

type searchShipmentPayload struct {
	PurchaseOrder string `json:"purchase_order"`
}

func buildShipmentDates(record *ShipmentRecord) (shipmentDates, error) {
	date, err := record.AppointmentDate()
	if err != nil {
		return shipmentDates{}, err
	}
	from, err := record.AppointmentTime()
	if err != nil {
		return shipmentDates{}, err
	}
	return shipmentDates{
		DeliveryAppointmentDate: date,
		DeliveryTimeFrom:        from,
		DeliveryAppointment:     record.DeliveryApptNumber,
	}, nil
}

func buildCreatePayload(record *ShipmentRecord) (string, error) {
	dates, err := buildShipmentDates(record)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(createShipmentPayload{
		PurchaseOrder: record.PurchaseOrder,
		Dates:         dates,
	})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func buildUpdatePayload(record *ShipmentRecord) (string, error) {
	dates, err := buildShipmentDates(record)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(updateShipmentPayload{Dates: dates})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// shipmentAPIBody is the subset of the API response the pipeline reads.
// Single-shipment replies carry the fields at the top level, search
// replies nest them under shipments.
type shipmentAPIBody struct {
	Shipments []struct {
		ShipmentID         string `json:"shipment_id"`
		NotificationReason string `json:"notification_reason"`
	} `json:"shipments"`
	ShipmentID         string `json:"shipment_id"`
	NotificationReason string `json:"notification_reason"`
	Message            string `json:"message"`
	ErrorText          string `json:"error"`
}

func extractShipmentFields(body string) (shipmentID, notificationReason string) {
	var parsed shipmentAPIBody
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return "", ""
	}
	if len(parsed.Shipments) > 0 {
		return parsed.Shipments[0].ShipmentID, parsed.Shipments[0].NotificationReason
	}
	return parsed.ShipmentID, parsed.NotificationReason
}

func errorMessageFromResponse(res *apiResponse) string {
	var parsed shipmentAPIBody
	if err := json.Unmarshal([]byte(res.Body), &parsed); err == nil {
		if parsed.ErrorText != "" {
			return parsed.ErrorText
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return fmt.Sprintf("shipment API returned status %d", res.Status)
}
