//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/pan-logistics-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type tracking struct {
	TrackingNumber string `json:"tracking_number"`
	Status         string `json:"status"`
	Progress       int    `json:"progress"`
	Timeline       []struct {
		Status    string `json:"status"`
		Completed bool   `json:"completed"`
	} `json:"timeline"`
}

type validation struct {
	Valid   bool   `json:"valid"`
	Exists  bool   `json:"exists"`
	Message string `json:"message"`
}

type createdBooking struct {
	BookingID         string `json:"booking_id"`
	TrackingNumber    string `json:"tracking_number"`
	EstimatedDelivery string `json:"estimated_delivery"`
}

type apiError struct {
	status  int
	message string
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.message, e.status)
}

func TestTrackingPortalContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	statuses := "Booked|Processing|In Transit|At Warehouse|Out for Delivery|Delivered"

	pact.AddInteraction().
		Given(pacttest.StateBookingsBaseline).
		UponReceiving("a booking request").
		WithRequest("POST", "/api/bookings/create", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleBookingPayload())
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"success": matchers.Like(true),
				"message": matchers.S("Booking created successfully"),
				"data": matchers.StructMatcher{
					"booking_id":         matchers.Like("3f8f6d1e-8a39-4f7b-9d6c-2b3f2d9c0a11"),
					"tracking_number":    matchers.Term(pacttest.ExistingTrackingNumber, pacttest.TrackingNumberPattern),
					"estimated_delivery": matchers.Term("2024-05-27", pacttest.DatePattern),
				},
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateShipmentExists).
		UponReceiving("a request to track an existing shipment").
		WithRequest("GET", "/api/tracking/"+pacttest.ExistingTrackingNumber).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"success": matchers.Like(true),
				"data": matchers.StructMatcher{
					"tracking_number": matchers.S(pacttest.ExistingTrackingNumber),
					"status":          matchers.Term("Booked", statuses),
					"progress":        matchers.Like(20),
					"timeline": matchers.ArrayMinLike(matchers.StructMatcher{
						"status":    matchers.Like("Order Placed"),
						"completed": matchers.Like(true),
					}, 6),
				},
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateBookingsBaseline).
		UponReceiving("a request to track an unknown shipment").
		WithRequest("GET", "/api/tracking/"+pacttest.MissingTrackingNumber).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"success": matchers.Like(false),
				"message": matchers.S("Shipment not found. Please check your tracking number."),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateShipmentExists).
		UponReceiving("a request to validate an existing tracking number").
		WithRequest("GET", "/api/tracking/validate/"+pacttest.ExistingTrackingNumber).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"success": matchers.Like(true),
				"data": matchers.StructMatcher{
					"valid":   matchers.Like(true),
					"exists":  matchers.Like(true),
					"message": matchers.Like("Tracking number found"),
				},
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newTrackingClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		created, err := client.Book(ctx, pacttest.ExampleBookingPayload())
		if err != nil {
			return fmt.Errorf("book: %w", err)
		}
		if created.TrackingNumber == "" || created.BookingID == "" {
			return fmt.Errorf("expected booking identifiers, got %+v", created)
		}

		shipment, err := client.Track(ctx, pacttest.ExistingTrackingNumber)
		if err != nil {
			return fmt.Errorf("track: %w", err)
		}
		if shipment.TrackingNumber != pacttest.ExistingTrackingNumber || len(shipment.Timeline) < 6 {
			return fmt.Errorf("unexpected tracking view %+v", shipment)
		}

		if _, err := client.Track(ctx, pacttest.MissingTrackingNumber); err == nil {
			return fmt.Errorf("expected 404 for %s", pacttest.MissingTrackingNumber)
		} else if apiErr, ok := err.(apiError); ok && apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.status)
		}

		check, err := client.Validate(ctx, pacttest.ExistingTrackingNumber)
		if err != nil {
			return fmt.Errorf("validate: %w", err)
		}
		if !check.Valid || !check.Exists {
			return fmt.Errorf("expected a valid existing number, got %+v", check)
		}
		return nil
	})
	require.NoError(t, err)
}

type trackingClient struct {
	baseURL    string
	httpClient *http.Client
}

func newTrackingClient(config pactconsumer.MockServerConfig) *trackingClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &trackingClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *trackingClient) Book(ctx context.Context, payload map[string]any) (*createdBooking, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/bookings/create", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	var out createdBooking
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *trackingClient) Track(ctx context.Context, trackingNumber string) (*tracking, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tracking/"+trackingNumber, nil)
	if err != nil {
		return nil, err
	}
	var out tracking
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *trackingClient) Validate(ctx context.Context, trackingNumber string) (*validation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tracking/validate/"+trackingNumber, nil)
	if err != nil {
		return nil, err
	}
	var out validation
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *trackingClient) do(req *http.Request, data any) error {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var body envelope
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return err
	}
	if res.StatusCode >= http.StatusBadRequest || !body.Success {
		return apiError{status: res.StatusCode, message: body.Message}
	}
	return json.Unmarshal(body.Data, data)
}
