package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"device-checkin-web/internal/model"
	apperrors "device-checkin-web/pkg/errors"
)

// Backend paths for the device resources.
const (
	pathComputers         = "/computers"
	pathMedicalDevices    = "/medicaldevices"
	pathFrequentComputers = "/computers/frequent"
	pathComputerCheckin   = "/computers/checkin"
	pathMedicalCheckin    = "/medicaldevices/checkin"
	pathDeviceCheckout    = "/devices/checkout/"
)

// ListComputers fetches and normalizes the computer collection. frequentIDs
// may be nil when the frequent flag is resolved elsewhere.
func (c *Client) ListComputers(ctx context.Context, frequentIDs map[string]bool) ([]model.Device, error) {
	var raw []model.RawDevice
	if err := c.getJSON(ctx, pathComputers, &raw); err != nil {
		return nil, err
	}
	devices := make([]model.Device, 0, len(raw))
	for _, r := range raw {
		devices = append(devices, model.ComputerFromRaw(r, frequentIDs))
	}
	return devices, nil
}

// ListMedicalDevices fetches and normalizes the medical device collection.
func (c *Client) ListMedicalDevices(ctx context.Context) ([]model.Device, error) {
	var raw []model.RawDevice
	if err := c.getJSON(ctx, pathMedicalDevices, &raw); err != nil {
		return nil, err
	}
	devices := make([]model.Device, 0, len(raw))
	for _, r := range raw {
		devices = append(devices, model.MedicalFromRaw(r))
	}
	return devices, nil
}

// ListFrequentComputers fetches the frequent-computer collection as
// normalized devices, each flagged frequent.
func (c *Client) ListFrequentComputers(ctx context.Context) ([]model.Device, error) {
	var raw []model.RawDevice
	if err := c.getJSON(ctx, pathFrequentComputers, &raw); err != nil {
		return nil, err
	}
	devices := make([]model.Device, 0, len(raw))
	for _, r := range raw {
		d := model.ComputerFromRaw(r, nil)
		d.IsFrequent = true
		devices = append(devices, d)
	}
	return devices, nil
}

// FrequentComputerIDs fetches the id set of the frequent-computer
// collection, the single source of truth for the frequent flag.
func (c *Client) FrequentComputerIDs(ctx context.Context) (map[string]bool, error) {
	var raw []model.RawDevice
	if err := c.getJSON(ctx, pathFrequentComputers, &raw); err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(raw))
	for _, r := range raw {
		if id := r.ID.String(); id != "" {
			ids[id] = true
		}
	}
	return ids, nil
}

// ListEnteredDevices issues the three collection fetches concurrently and
// merges them: medical devices first, then computers with the frequent flag
// joined by id. Any single failure fails the whole merge; the caller never
// sees partial data.
func (c *Client) ListEnteredDevices(ctx context.Context) ([]model.Device, error) {
	var (
		wg       sync.WaitGroup
		medical  []model.Device
		rawComps []model.RawDevice
		freqIDs  map[string]bool

		medErr, compErr, freqErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		medical, medErr = c.ListMedicalDevices(ctx)
	}()
	go func() {
		defer wg.Done()
		compErr = c.getJSON(ctx, pathComputers, &rawComps)
	}()
	go func() {
		defer wg.Done()
		freqIDs, freqErr = c.FrequentComputerIDs(ctx)
	}()
	wg.Wait()

	for _, err := range []error{medErr, compErr, freqErr} {
		if err != nil {
			return nil, err
		}
	}

	merged := make([]model.Device, 0, len(medical)+len(rawComps))
	merged = append(merged, medical...)
	for _, r := range rawComps {
		merged = append(merged, model.ComputerFromRaw(r, freqIDs))
	}
	return merged, nil
}

// CheckInComputer submits the computer check-in form as multipart form
// data. The frequent flag selects the submission endpoint. Returns the
// created record normalized, falling back to the submitted input for any
// field the server omits.
func (c *Client) CheckInComputer(ctx context.Context, in model.ComputerCheckin) (model.Device, error) {
	if in.Photo == nil {
		return model.Device{}, apperrors.ValidationError("a photo is required")
	}

	fields := map[string]string{
		"brand":        strings.TrimSpace(in.Brand),
		"model":        strings.TrimSpace(in.Model),
		"color":        strings.TrimSpace(in.Color),
		"ownerName":    strings.TrimSpace(in.OwnerName),
		"ownerId":      strings.TrimSpace(in.OwnerID),
		"descriptions": strings.TrimSpace(in.Descriptions),
		"isFrequent":   boolField(in.Frequent),
	}

	endpoint := pathComputerCheckin
	if in.Frequent {
		endpoint = pathFrequentComputers
	}

	var raw model.RawDevice
	if err := c.postMultipart(ctx, endpoint, fields, "photo", in.Photo.Filename, in.Photo.Data, &raw); err != nil {
		return model.Device{}, err
	}

	created := model.ComputerFromRaw(raw, nil)
	created.IsFrequent = in.Frequent
	fillFromInput(&created, fields)
	return created, nil
}

// CheckInMedicalDevice submits the medical check-in form as multipart form
// data.
func (c *Client) CheckInMedicalDevice(ctx context.Context, in model.MedicalCheckin) (model.Device, error) {
	if in.Photo == nil {
		return model.Device{}, apperrors.ValidationError("a photo is required")
	}

	fields := map[string]string{
		"brand":        strings.TrimSpace(in.Brand),
		"model":        strings.TrimSpace(in.Model),
		"serial":       strings.TrimSpace(in.Serial),
		"ownerName":    strings.TrimSpace(in.OwnerName),
		"ownerId":      strings.TrimSpace(in.OwnerID),
		"provider":     strings.TrimSpace(in.Provider),
		"descriptions": strings.TrimSpace(in.Descriptions),
		"category":     strings.TrimSpace(in.Category),
	}

	var raw model.RawDevice
	if err := c.postMultipart(ctx, pathMedicalCheckin, fields, "photo", in.Photo.Filename, in.Photo.Data, &raw); err != nil {
		return model.Device{}, err
	}

	created := model.MedicalFromRaw(raw)
	fillFromInput(&created, fields)
	if created.Serial == "" {
		created.Serial = fields["serial"]
	}
	return created, nil
}

// CheckoutDevice PATCHes the checkout endpoint and returns the
// server-confirmed exit time. The server's clock is authoritative; when the
// response omits a usable timestamp the current display falls back to the
// formatted response-free marker and the caller re-fetches on next load.
func (c *Client) CheckoutDevice(ctx context.Context, id string) (string, error) {
	var raw model.RawDevice
	if _, err := c.sendJSON(ctx, http.MethodPatch, pathDeviceCheckout+url.PathEscape(id), nil, &raw); err != nil {
		return "", err
	}
	return raw.ResolvedExitTime(), nil
}

// UpdateDevice PATCHes the kind-specific endpoint with the edit payload.
func (c *Client) UpdateDevice(ctx context.Context, in model.DeviceUpdate) error {
	path := devicePath(in.Kind, in.ID)
	_, err := c.sendJSON(ctx, http.MethodPatch, path, in, nil)
	return err
}

// DeleteDevice removes a device through its kind-specific endpoint.
func (c *Client) DeleteDevice(ctx context.Context, kind model.DeviceKind, id string) error {
	return c.delete(ctx, devicePath(kind, id))
}

// MarkComputerFrequent re-submits an existing computer to the
// frequent-computer endpoint, re-attaching its photo when one could be
// fetched.
func (c *Client) MarkComputerFrequent(ctx context.Context, d model.Device, photo *model.PhotoUpload) (model.Device, error) {
	in := model.ComputerCheckin{
		Brand:     d.Brand,
		Model:     d.Model,
		Color:     d.Color,
		OwnerName: d.OwnerName,
		OwnerID:   d.OwnerID,
		Frequent:  true,
		Photo:     photo,
	}
	if in.Photo == nil {
		in.Photo = &model.PhotoUpload{Filename: "photo.jpg"}
	}
	return c.CheckInComputer(ctx, in)
}

// FetchPhoto downloads a device photo so it can be re-uploaded as a new
// file blob. A missing photo is not an error; the caller proceeds without.
func (c *Client) FetchPhoto(ctx context.Context, photoURL string) *model.PhotoUpload {
	if photoURL == "" || strings.HasPrefix(photoURL, "http://") || strings.HasPrefix(photoURL, "https://") {
		return nil
	}
	data, contentType, err := c.FetchRaw(ctx, photoURL)
	if err != nil {
		c.logger.Printf("could not fetch photo %s: %v", photoURL, err)
		return nil
	}
	name := photoURL[strings.LastIndex(photoURL, "/")+1:]
	return &model.PhotoUpload{Filename: name, ContentType: contentType, Data: data}
}

func devicePath(kind model.DeviceKind, id string) string {
	base := pathComputers
	if kind == model.KindMedical {
		base = pathMedicalDevices
	}
	return base + "/" + url.PathEscape(id)
}

func boolField(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// fillFromInput backfills fields the server response omitted with the
// values the user submitted, so the CREATE audit event and the confirmation
// view never show blanks for data the user just typed.
func fillFromInput(d *model.Device, fields map[string]string) {
	if d.Brand == "" || strings.HasPrefix(d.Brand, "Unknown") {
		if v := fields["brand"]; v != "" {
			d.Brand = v
		}
	}
	if d.Model == "" || strings.HasPrefix(d.Model, "Unknown") {
		if v := fields["model"]; v != "" {
			d.Model = v
		}
	}
	if d.OwnerName == "" || strings.HasPrefix(d.OwnerName, "Unknown") {
		if v := fields["ownerName"]; v != "" {
			d.OwnerName = v
		}
	}
	if d.OwnerID == "" {
		d.OwnerID = fields["ownerId"]
	}
	if d.Color == "" {
		d.Color = fields["color"]
	}
}
