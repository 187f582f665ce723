package result

// Kind names the renderable interpretation of one raw result payload.
type Kind string

const (
	KindInterviewList     Kind = "interview_list"
	KindApplicationList   Kind = "application_list"
	KindSingleApplication Kind = "single_application"
	KindCountAnnouncement Kind = "count_announcement"
	KindApplicantsByJob   Kind = "applicants_by_job"
	KindJobList           Kind = "job_list"
	KindUserList          Kind = "user_list"
	KindSingleUser        Kind = "single_user"
	KindGenericSuccess    Kind = "generic_success"
	KindGenericError      Kind = "generic_error"
	KindUnrecognized      Kind = "unrecognized"
)

// View is the typed interpretation of a raw result: which renderer applies
// and the fields that renderer needs. Only the fields for the active Kind
// are populated.
type View struct {
	Kind Kind

	Jobs          []Job
	Users         []User
	User          *User
	Applications  []Application
	Application   *Application
	JobApplicants []JobApplicants
	Interviews    []Interview

	// MutationSuccess marks a single-user view produced by a create or
	// update operation so the renderer can acknowledge the mutation.
	MutationSuccess bool

	// Message carries the backend's error text for KindGenericError.
	Message string
}

// Job is one job record as the backend shapes it.
type Job struct {
	JobID            int      `mapstructure:"jobId"`
	Title            string   `mapstructure:"title"`
	Company          string   `mapstructure:"company"`
	Location         string   `mapstructure:"location"`
	SkillsRequired   []string `mapstructure:"skillsRequired"`
	ApplicationCount *int     `mapstructure:"applicationCount"`
	Applicants       []User   `mapstructure:"applicants"`
}

// User is one user record; recruiters see applicants through it, lookups
// and profile mutations return it directly.
type User struct {
	UserID               int      `mapstructure:"UserID"`
	FirstName            string   `mapstructure:"firstName"`
	LastName             string   `mapstructure:"lastName"`
	ProfessionalTitle    string   `mapstructure:"professionalTitle"`
	City                 string   `mapstructure:"city"`
	Country              string   `mapstructure:"country"`
	Skills               []string `mapstructure:"skills"`
	YearsOfExperience    *float64 `mapstructure:"years_of_experience"`
	HighestQualification string   `mapstructure:"highest_qualification"`
	ApplicationStatus    string   `mapstructure:"applicationStatus"`
	ResumeURL            string   `mapstructure:"resume_url"`
	InterviewTime        string   `mapstructure:"interviewTime"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Application is one application record.
type Application struct {
	AppID       int    `mapstructure:"appId"`
	UserID      int    `mapstructure:"userId"`
	JobID       int    `mapstructure:"jobId"`
	Status      string `mapstructure:"status"`
	SubmittedAt string `mapstructure:"submittedAt"`
	Notes       string `mapstructure:"notes"`
	Job         *Job   `mapstructure:"job"`
	Candidate   *User  `mapstructure:"candidate"`
}

// Interview is one scheduled interview record.
type Interview struct {
	InterviewID int    `mapstructure:"interviewId"`
	JobID       int    `mapstructure:"jobId"`
	CandidateID int    `mapstructure:"candidateId"`
	StartTime   string `mapstructure:"startTime"`
	EndTime     string `mapstructure:"endTime"`
	Job         *Job   `mapstructure:"job"`
	Candidate   *User  `mapstructure:"candidate"`
}

// JobApplicants groups the applicants of one job, annotated with the owning
// job so downstream scheduling actions know their target.
type JobApplicants struct {
	Job        Job
	Applicants []User
}
