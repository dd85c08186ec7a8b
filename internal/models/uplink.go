package models

import "time"

// Record is one decoded uplink document as returned by the V3 storage API.
// Its schema belongs to the remote service and is not validated.
type Record map[string]any

// Uplink is a typed view over the common fields of a V3 storage record.
type Uplink struct {
	DeviceID       string
	ApplicationID  string
	DevEUI         string
	ReceivedAt     time.Time
	DecodedPayload map[string]any
}

// Uplink extracts the well-known fields from r. Missing or mistyped fields
// are left at their zero value.
func (r Record) Uplink() Uplink {
	var u Uplink

	result := asMap(r["result"])
	if result == nil {
		// field-masked responses sometimes omit the "result" wrapper
		result = r
	}

	ids := asMap(result["end_device_ids"])
	u.DeviceID, _ = ids["device_id"].(string)
	u.DevEUI, _ = ids["dev_eui"].(string)
	u.ApplicationID, _ = asMap(ids["application_ids"])["application_id"].(string)

	if s, ok := result["received_at"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			u.ReceivedAt = t
		}
	}

	u.DecodedPayload = asMap(asMap(result["uplink_message"])["decoded_payload"])
	return u
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
