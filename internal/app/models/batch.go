package models

import (
	"time"

	"github.com/google/uuid"
)

// Batch groups students under one skill and teacher, based on the 'batches' table
type Batch struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	AcademyID   uuid.UUID   `json:"academyId" db:"academy_id"`
	SkillID     uuid.UUID   `json:"skillId" db:"skill_id"`
	TeacherID   *uuid.UUID  `json:"teacherId,omitempty" db:"teacher_id"`
	StartDate   time.Time   `json:"startDate" db:"start_date"`
	EndDate     time.Time   `json:"endDate" db:"end_date"`
	MaxStudents int         `json:"maxStudents" db:"max_students"`
	Status      BatchStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`

	Skill   *Skill `json:"skill,omitempty"`   // Relation, no db tag
	Teacher *User  `json:"teacher,omitempty"` // Relation, no db tag
}

// StudentEnrollment links a student to an academy, based on the 'student_enrollments' table
type StudentEnrollment struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	StudentID uuid.UUID      `json:"studentId" db:"student_id"`
	AcademyID uuid.UUID      `json:"academyId" db:"academy_id"`
	Status    ApprovalStatus `json:"status" db:"status"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`

	Student *User `json:"student,omitempty"` // Relation, no db tag
}

// TeacherAssignment links a teacher to an academy, based on the 'teacher_assignments' table
type TeacherAssignment struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	TeacherID uuid.UUID      `json:"teacherId" db:"teacher_id"`
	AcademyID uuid.UUID      `json:"academyId" db:"academy_id"`
	Status    ApprovalStatus `json:"status" db:"status"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`

	Teacher *User `json:"teacher,omitempty"` // Relation, no db tag
}
