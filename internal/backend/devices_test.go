package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"device-checkin-web/internal/model"
)

// fakeBackend serves the three device collections the merged list fetches.
type fakeBackend struct {
	computers  string
	medical    string
	frequent   string
	failOn     string
	mux        *http.ServeMux
	checkinHit int
}

func newFakeBackend(t *testing.T) (*fakeBackend, *Client) {
	t.Helper()
	fb := &fakeBackend{
		computers: `[]`,
		medical:   `[]`,
		frequent:  `[]`,
		mux:       http.NewServeMux(),
	}
	fb.mux.HandleFunc("/api/computers/frequent", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fb.checkinHit++
			w.Write([]byte(`{"id":"freq-new"}`))
			return
		}
		fb.serve(w, "frequent", fb.frequent)
	})
	fb.mux.HandleFunc("/api/computers/checkin", func(w http.ResponseWriter, r *http.Request) {
		fb.checkinHit++
		w.Write([]byte(`{"id":"comp-new","createdAt":"2026-08-01T08:30:00Z"}`))
	})
	fb.mux.HandleFunc("/api/computers", func(w http.ResponseWriter, r *http.Request) {
		fb.serve(w, "computers", fb.computers)
	})
	fb.mux.HandleFunc("/api/medicaldevices", func(w http.ResponseWriter, r *http.Request) {
		fb.serve(w, "medical", fb.medical)
	})

	srv := httptest.NewServer(fb.mux)
	t.Cleanup(srv.Close)
	return fb, New(Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil)
}

func (fb *fakeBackend) serve(w http.ResponseWriter, name, body string) {
	if fb.failOn == name {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func TestListEnteredDevicesMergesAndJoinsFrequent(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.medical = `[{"id":"med-1","brand":"Philips","model":"Pump","checkinAt":"2026-08-01T08:00:00Z"}]`
	fb.computers = `[
		{"id":"comp-1","brand":"Dell","model":"XPS","createdAt":"2026-08-01T09:00:00Z"},
		{"id":"comp-2","brand":"HP","model":"EliteBook","createdAt":"2026-08-01T09:10:00Z"}
	]`
	fb.frequent = `[{"id":"comp-2"}]`

	devices, err := client.ListEnteredDevices(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 3)

	// Medical devices come first, then computers
	assert.Equal(t, model.KindMedical, devices[0].Kind)
	assert.Equal(t, "med-1", devices[0].ID)

	byID := map[string]model.Device{}
	for _, d := range devices {
		byID[d.ID] = d
	}
	assert.False(t, byID["comp-1"].IsFrequent)
	assert.True(t, byID["comp-2"].IsFrequent, "frequent flag joins by id from the frequent collection")
	assert.False(t, byID["med-1"].IsFrequent)
}

func TestListEnteredDevicesAnyFailureFailsTheMerge(t *testing.T) {
	for _, failOn := range []string{"computers", "medical", "frequent"} {
		t.Run(failOn, func(t *testing.T) {
			fb, client := newFakeBackend(t)
			fb.computers = `[{"id":"comp-1"}]`
			fb.medical = `[{"id":"med-1"}]`
			fb.failOn = failOn

			devices, err := client.ListEnteredDevices(context.Background())
			require.Error(t, err)
			assert.Nil(t, devices, "no partial data on failure")
		})
	}
}

func TestCheckInComputerEndpointSelection(t *testing.T) {
	in := model.ComputerCheckin{
		Brand:     "Dell",
		Model:     "XPS",
		Color:     "Black",
		OwnerName: "Maria Lopez",
		OwnerID:   "10203040",
		Photo:     &model.PhotoUpload{Filename: "a.jpg", Data: []byte{1}},
	}

	t.Run("Regular check-in", func(t *testing.T) {
		fb, client := newFakeBackend(t)
		created, err := client.CheckInComputer(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, 1, fb.checkinHit)
		assert.Equal(t, "comp-new", created.ID)
		assert.False(t, created.IsFrequent)
		// Server omitted these; the submitted values fill the gaps
		assert.Equal(t, "Dell", created.Brand)
		assert.Equal(t, "Maria Lopez", created.OwnerName)
	})

	t.Run("Frequent check-in goes to the frequent endpoint", func(t *testing.T) {
		fb, client := newFakeBackend(t)
		freq := in
		freq.Frequent = true
		created, err := client.CheckInComputer(context.Background(), freq)
		require.NoError(t, err)
		assert.Equal(t, 1, fb.checkinHit)
		assert.Equal(t, "freq-new", created.ID)
		assert.True(t, created.IsFrequent)
	})

	t.Run("Missing photo is rejected before the network", func(t *testing.T) {
		fb, client := newFakeBackend(t)
		noPhoto := in
		noPhoto.Photo = nil
		_, err := client.CheckInComputer(context.Background(), noPhoto)
		require.Error(t, err)
		assert.Equal(t, 0, fb.checkinHit)
	})
}

func TestCheckoutDeviceReturnsServerExitTime(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/devices/checkout/comp-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		json.NewEncoder(w).Encode(map[string]string{
			"id":         "comp-1",
			"checkoutAt": "server-says-so",
			"updatedAt":  "2026-08-01T17:00:00Z",
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	client := New(Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil)

	exitTime, err := client.CheckoutDevice(context.Background(), "comp-1")
	require.NoError(t, err)
	assert.Equal(t, "server-says-so", exitTime)
}

func TestCheckoutDeviceIgnoresUpdatedAtOnly(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/devices/checkout/comp-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"id":        "comp-1",
			"updatedAt": "2026-08-01T17:00:00Z",
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	client := New(Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil)

	exitTime, err := client.CheckoutDevice(context.Background(), "comp-1")
	require.NoError(t, err)
	assert.Empty(t, exitTime, "updatedAt alone never counts as a checkout")
}

func TestFetchPhoto(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/uploads/front.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte{0xff, 0xd8})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	client := New(Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil)

	photo := client.FetchPhoto(context.Background(), "/uploads/front.jpg")
	require.NotNil(t, photo)
	assert.Equal(t, "front.jpg", photo.Filename)
	assert.Equal(t, "image/jpeg", photo.ContentType)

	assert.Nil(t, client.FetchPhoto(context.Background(), ""))
	assert.Nil(t, client.FetchPhoto(context.Background(), "https://elsewhere.example/x.jpg"))
	assert.Nil(t, client.FetchPhoto(context.Background(), "/uploads/missing.jpg"))
}
