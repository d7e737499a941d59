package models

import "time"

// Submission is an immutable progress fact reported by a field representative
// at a store. Submissions for container items carry one record per nested
// product; ContainerItemID links them to their parent and BatchID groups the
// records created by one batched submit.
type Submission struct {
	ID              int       `json:"id"`
	WaveID          int       `json:"wave_id"`
	BatchID         string    `json:"batch_id,omitempty"`
	ActorID         int       `json:"actor_id"`
	ActorName       string    `json:"actor_name"`
	LocationID      int       `json:"location_id"`
	LocationName    string    `json:"location_name"`
	ItemType        ItemType  `json:"item_type"`
	ItemID          int       `json:"item_id"` // product ID for container types
	ItemName        string    `json:"item_name,omitempty"`
	ContainerItemID *int      `json:"container_item_id,omitempty"`
	Quantity        int       `json:"quantity"`
	UnitValue       float64   `json:"unit_value"`
	Timestamp       time.Time `json:"timestamp"`
	PhotoURL        string    `json:"photo_url,omitempty"`
}

// Value is the monetary worth of the submission.
func (s Submission) Value() float64 {
	return float64(s.Quantity) * s.UnitValue
}

// FotoEntry is the progress record of a photo-only wave.
type FotoEntry struct {
	ID           int       `json:"id"`
	WaveID       int       `json:"wave_id"`
	ActorID      int       `json:"actor_id"`
	ActorName    string    `json:"actor_name"`
	LocationID   int       `json:"location_id"`
	LocationName string    `json:"location_name"`
	PhotoURL     string    `json:"photo_url"`
	Tags         []string  `json:"tags"`
	Timestamp    time.Time `json:"timestamp"`
}

// AllProgress is the polymorphic payload of GET /wellen/{id}/all-progress:
// a flat submission list, or photos for photo-only waves.
type AllProgress struct {
	Type        string       `json:"type"` // "submissions" or "foto"
	Submissions []Submission `json:"submissions,omitempty"`
	Photos      []FotoEntry  `json:"photos,omitempty"`
}

// ProductSubmissionRef ties one constituent submission record to its place in
// a composite row.
type ProductSubmissionRef struct {
	SubmissionID int     `json:"submission_id"`
	ProductID    int     `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Quantity     int     `json:"quantity"`
	UnitValue    float64 `json:"unit_value"`
}

// SubmissionRow is the displayed entry: one row per flat submission, or one
// aggregated row per container batch owning its constituent refs. The
// aggregate quantity/value always equals the sum over Refs.
type SubmissionRow struct {
	RowID        string                 `json:"row_id"`
	WaveID       int                    `json:"wave_id"`
	ActorID      int                    `json:"actor_id"`
	ActorName    string                 `json:"actor_name"`
	LocationID   int                    `json:"location_id"`
	LocationName string                 `json:"location_name"`
	ItemType     ItemType               `json:"item_type"`
	ItemID       int                    `json:"item_id"` // container item ID for composite rows
	Quantity     int                    `json:"quantity"`
	Value        float64                `json:"value"`
	Timestamp    time.Time              `json:"timestamp"`
	Refs         []ProductSubmissionRef `json:"refs"`
}

// Composite reports whether the row aggregates more than one underlying
// submission record.
func (r SubmissionRow) Composite() bool {
	return len(r.Refs) > 1
}

// BatchSubmissionItem is one line of a batched submit.
type BatchSubmissionItem struct {
	ItemType        ItemType `json:"item_type"`
	ItemID          int      `json:"item_id"`
	ContainerItemID *int     `json:"container_item_id,omitempty"`
	Quantity        int      `json:"quantity"`
	UnitValue       *float64 `json:"unit_value,omitempty"`
}

// BatchSubmissionRequest is the payload of POST /wellen/{id}/progress/batch.
// Timestamp may be backdated by on-behalf entry; zero means "now".
type BatchSubmissionRequest struct {
	ActorID    int                   `json:"actor_id"`
	LocationID int                   `json:"location_id"`
	Items      []BatchSubmissionItem `json:"items"`
	Timestamp  time.Time             `json:"timestamp,omitempty"`
	PhotoURL   string                `json:"photo_url,omitempty"`
	Photos     []PhotoCapture        `json:"photos,omitempty"` // photo-only waves
}

// PhotoCapture is one captured photo with its selected tags.
type PhotoCapture struct {
	URL  string   `json:"url"`
	Tags []string `json:"tags"`
}

// UpdateSubmissionRequest is the payload of PUT /wellen/submissions/{id}.
type UpdateSubmissionRequest struct {
	Quantity int `json:"quantity"`
}
