//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "pan-logistics-api"
	ConsumerName = "tracking-portal"

	StateBookingsBaseline = "no bookings exist"
	StateShipmentExists   = "shipment PAN-PACT01-TRACK001 exists"
)

const (
	ExistingTrackingNumber = "PAN-PACT01-TRACK001"
	MissingTrackingNumber  = "PAN-PACT00-MISSING0"

	// TrackingNumberPattern matches every issued tracking number.
	TrackingNumberPattern = `^PAN-[A-Z0-9]+-[A-Z0-9]+$`
	// DatePattern matches calendar dates in responses.
	DatePattern = `^\d{4}-\d{2}-\d{2}$`
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the tracking portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleBookingPayload is the booking form the portal submits.
func ExampleBookingPayload() map[string]any {
	return map[string]any{
		"senderName":       "Pact Sender",
		"senderPhone":      "+1 416 555 0100",
		"senderEmail":      "pact.sender@example.com",
		"senderAddress":    "1 Front St, Toronto",
		"receiverName":     "Pact Receiver",
		"receiverPhone":    "+44 20 5555 0100",
		"receiverAddress":  "10 King St, London",
		"receiverCountry":  "United Kingdom",
		"shipmentType":     "Sea Freight",
		"weight":           120,
		"cargoType":        "Furniture",
		"pickupDate":       "2024-05-02",
		"deliveryPriority": "Standard",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
