package model

import "time"

// Student is the institution-facing profile behind a User. StuID is the
// system-generated identifier printed on library cards and search results.
type Student struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	StuID       string    `json:"stu_id"`
	StudentName string    `json:"student_name"`
	Email       string    `json:"email"`
	DateCreated time.Time `json:"date_created"`
}

type AddStudentReq struct {
	StudentName string `json:"student_name" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
}
