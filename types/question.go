package types

import "time"

// Question is an interview question filed under a Job/SubJob pair.
// It references its author and categories by ID and owns none of them.
type Question struct {
	// ID is the store-assigned identifier of the question.
	ID string `json:"id" db:"id"`

	// Title is a short headline for the question.
	Title string `json:"title" db:"title"`

	// Description is the full question text.
	Description string `json:"description" db:"description"`

	// CreatedDate is set by the store on insert and never changes.
	CreatedDate time.Time `json:"createdDate" db:"created_date"`

	// CreatedBy is the ID of the authoring user. Only this user may delete
	// the question.
	CreatedBy string `json:"createdBy" db:"created_by"`

	// MainJobCategory is the ID of the Job the question is filed under.
	MainJobCategory string `json:"mainJobCategory" db:"main_job_category"`

	// MainSubJobCategory is the ID of the SubJob the question is filed under.
	MainSubJobCategory string `json:"mainSubJobCategory" db:"main_sub_job_category"`
}

// PopulatedQuestion is a Question with its references expanded into the
// referenced documents. A reference that no longer resolves is nil.
type PopulatedQuestion struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	CreatedDate        time.Time `json:"createdDate"`
	CreatedBy          *User     `json:"createdBy"`
	MainJobCategory    *Job      `json:"mainJobCategory"`
	MainSubJobCategory *SubJob   `json:"mainSubJobCategory"`
}
