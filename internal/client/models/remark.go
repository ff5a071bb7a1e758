package models

import "time"

// Remark is a timestamped annotation on a record. The first remark of a
// record is flagged IsInitial and cannot be deleted.
type Remark struct {
	ID        int64     `json:"id"`
	RecordID  int64     `json:"recordId"`
	Remark    string    `json:"remark"`
	IsInitial bool      `json:"isInitial"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RemarksPage struct {
	Remarks    []Remark   `json:"remarks"`
	Pagination Pagination `json:"pagination"`
}

// RemarkInput is the body of remark create and update calls.
type RemarkInput struct {
	Remark string `json:"remark"`
}
