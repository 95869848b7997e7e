package types

import "time"

// Job is a top-level job category of the catalog, e.g. "Frontend Developer".
// Jobs are the root of the category hierarchy and are never deleted.
type Job struct {
	// ID is the store-assigned identifier of the job.
	ID string `json:"id" db:"id"`

	// Title is the display name of the job category.
	Title string `json:"title" db:"title"`

	// ImageURL points to the image shown for the category.
	ImageURL string `json:"imageUrl" db:"image_url"`

	// CreatedDate is set by the store on insert and never changes.
	CreatedDate time.Time `json:"createdDate" db:"created_date"`
}

// SubJob is a specialization nested under exactly one Job, e.g. "React"
// under "Frontend Developer".
type SubJob struct {
	// ID is the store-assigned identifier of the sub-job.
	ID string `json:"id" db:"id"`

	// Title is the display name of the sub-job category.
	Title string `json:"title" db:"title"`

	// ImageURL points to the image shown for the category.
	ImageURL string `json:"imageUrl" db:"image_url"`

	// MainJobCategory is the ID of the parent Job. It always comes from the
	// route, never from the request payload.
	MainJobCategory string `json:"mainJobCategory" db:"main_job_category"`

	// CreatedDate is set by the store on insert and never changes.
	CreatedDate time.Time `json:"createdDate" db:"created_date"`
}
