package model

import "slices"

// Profile widget bounds and defaults.
const (
	MinGPA             = 0.0
	MaxGPA             = 4.0
	DefaultGPA         = 3.0
	MaxStudyHours      = 168
	DefaultStudyHours  = 10
	MaxAttendance      = 100
	DefaultAttendance  = 80
	MinConfidence      = 50
	MaxConfidence      = 100
	DefaultConfidence  = 80
	DefaultPreviousGPA = "A"
)

// YearLevels lists the selectable year levels.
var YearLevels = []string{"First year", "Second year", "Third year", "Fourth year"}

// Activities lists the selectable extracurricular activities.
var Activities = []string{"Sports", "Music", "Chess", "Drama", "Volunteer Work", "Table tennis", "Christian Union"}

// LetterGrades lists the selectable previous course grades.
var LetterGrades = []string{"A", "B", "C", "D", "F"}

// Profile holds the sidebar "Student Information" fields. It is stored and
// displayed but never used when computing a grade.
type Profile struct {
	Name            string   `json:"name"`
	YearLevel       string   `json:"year_level"`
	CurrentGPA      float64  `json:"current_gpa"`
	StudyHours      int      `json:"study_hours"`
	Attendance      int      `json:"attendance"`
	Activities      []string `json:"activities"`
	PreviousGrade   string   `json:"previous_grade"`
	ExamDate        string   `json:"exam_date"`
	ConfidenceLevel int      `json:"confidence"`
}

// DefaultProfile returns the values the sidebar starts with.
func DefaultProfile() Profile {
	return Profile{
		YearLevel:       YearLevels[0],
		CurrentGPA:      DefaultGPA,
		StudyHours:      DefaultStudyHours,
		Attendance:      DefaultAttendance,
		Activities:      []string{},
		PreviousGrade:   DefaultPreviousGPA,
		ConfidenceLevel: DefaultConfidence,
	}
}

// Normalize clamps numeric fields to the widget ranges and drops choices
// that are not offered by the form.
func (p Profile) Normalize() Profile {
	out := p.Clone()
	out.CurrentGPA = min(max(out.CurrentGPA, MinGPA), MaxGPA)
	out.StudyHours = min(max(out.StudyHours, 0), MaxStudyHours)
	out.Attendance = min(max(out.Attendance, 0), MaxAttendance)
	out.ConfidenceLevel = min(max(out.ConfidenceLevel, MinConfidence), MaxConfidence)
	if !slices.Contains(YearLevels, out.YearLevel) {
		out.YearLevel = YearLevels[0]
	}
	if !slices.Contains(LetterGrades, out.PreviousGrade) {
		out.PreviousGrade = DefaultPreviousGPA
	}
	activities := make([]string, 0, len(out.Activities))
	for _, a := range out.Activities {
		if slices.Contains(Activities, a) && !slices.Contains(activities, a) {
			activities = append(activities, a)
		}
	}
	out.Activities = activities
	return out
}

// Clone returns a copy that shares no slices with p.
func (p Profile) Clone() Profile {
	out := p
	out.Activities = slices.Clone(p.Activities)
	if out.Activities == nil {
		out.Activities = []string{}
	}
	return out
}
