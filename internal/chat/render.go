package chat

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/RJBOGA/JAP/internal/result"
)

// Render produces the terminal representation for a classified view. Every
// kind renders to something; empty collections get an explicit "no results"
// line rather than silence or an error.
func Render(view result.View) string {
	switch view.Kind {
	case result.KindJobList:
		return renderJobList(view.Jobs)
	case result.KindUserList:
		return renderUserList(view.Users)
	case result.KindSingleUser:
		return renderSingleUser(view)
	case result.KindApplicationList:
		return renderApplicationList(view.Applications)
	case result.KindSingleApplication:
		return renderSingleApplication(view.Application)
	case result.KindApplicantsByJob:
		return renderApplicantsByJob(view.JobApplicants)
	case result.KindCountAnnouncement:
		return renderCountAnnouncement(view.Jobs)
	case result.KindInterviewList:
		return renderInterviewList(view.Interviews)
	case result.KindGenericSuccess:
		return "The operation was successful."
	case result.KindGenericError:
		if view.Message != "" {
			return "An error occurred: " + view.Message
		}
		return "An error occurred."
	default:
		return "I couldn't interpret that result. Show the raw response for details."
	}
}

// RenderDetails prints the generated query and the raw result, the detail
// toggle of the chat view.
func RenderDetails(generatedQuery string, raw any) string {
	var b strings.Builder

	b.WriteString("Generated query:\n")
	b.WriteString(generatedQuery)
	b.WriteString("\n\nResult JSON:\n")

	pretty, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		b.WriteString(fmt.Sprintf("%v", raw))
	} else {
		b.Write(pretty)
	}

	return b.String()
}

func renderJobList(jobs []result.Job) string {
	if len(jobs) == 0 {
		return "No jobs found matching your criteria."
	}

	var b strings.Builder
	for _, job := range jobs {
		b.WriteString(renderJob(job))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderJob(job result.Job) string {
	var b strings.Builder

	fmt.Fprintf(&b, "* %s", fallback(job.Title, "(untitled)"))
	if job.Company != "" {
		fmt.Fprintf(&b, " at %s", job.Company)
	}
	if job.Location != "" {
		fmt.Fprintf(&b, " (%s)", job.Location)
	}
	b.WriteString("\n")

	if len(job.SkillsRequired) > 0 {
		fmt.Fprintf(&b, "  skills: %s\n", strings.Join(job.SkillsRequired, ", "))
	}

	return b.String()
}

func renderUserList(users []result.User) string {
	if len(users) == 0 {
		return "No users found matching your criteria."
	}

	var b strings.Builder
	for _, user := range users {
		b.WriteString(renderUser(user))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderUser(user result.User) string {
	var b strings.Builder

	fmt.Fprintf(&b, "* %s", fallback(user.FullName(), "(unnamed)"))
	if user.ProfessionalTitle != "" {
		fmt.Fprintf(&b, ", %s", user.ProfessionalTitle)
	}
	if user.City != "" && user.Country != "" {
		fmt.Fprintf(&b, " (%s, %s)", user.City, user.Country)
	}
	b.WriteString("\n")

	if user.YearsOfExperience != nil {
		fmt.Fprintf(&b, "  experience: %.0f years\n", *user.YearsOfExperience)
	}
	if user.HighestQualification != "" {
		fmt.Fprintf(&b, "  qualification: %s\n", user.HighestQualification)
	}
	if len(user.Skills) > 0 {
		fmt.Fprintf(&b, "  skills: %s\n", strings.Join(user.Skills, ", "))
	}
	if user.ApplicationStatus != "" {
		fmt.Fprintf(&b, "  status: %s\n", user.ApplicationStatus)
	}

	return b.String()
}

func renderSingleUser(view result.View) string {
	if view.User == nil {
		return "No user found."
	}

	card := strings.TrimRight(renderUser(*view.User), "\n")
	if view.MutationSuccess {
		return "Success! User profile saved:\n" + card
	}
	return card
}

func renderApplicationList(apps []result.Application) string {
	if len(apps) == 0 {
		return "No applications found."
	}

	var b strings.Builder
	for _, app := range apps {
		fmt.Fprintf(&b, "* application #%d", app.AppID)
		if app.Job != nil && app.Job.Title != "" {
			fmt.Fprintf(&b, " for %s", app.Job.Title)
			if app.Job.Company != "" {
				fmt.Fprintf(&b, " at %s", app.Job.Company)
			}
		}
		fmt.Fprintf(&b, " [%s]", fallback(app.Status, "unknown status"))
		if app.SubmittedAt != "" {
			fmt.Fprintf(&b, " submitted %s", app.SubmittedAt)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSingleApplication(app *result.Application) string {
	if app == nil {
		return "No application found."
	}

	line := fmt.Sprintf("Application #%d is now %s.", app.AppID, fallback(app.Status, "updated"))
	if app.Candidate != nil && app.Candidate.FirstName != "" {
		line = fmt.Sprintf("%s's application #%d is now %s.", app.Candidate.FullName(), app.AppID, fallback(app.Status, "updated"))
	}
	return line
}

func renderApplicantsByJob(groups []result.JobApplicants) string {
	var b strings.Builder

	for i, group := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Applicants for %s", fallback(group.Job.Title, "(untitled)"))
		if group.Job.Company != "" {
			fmt.Fprintf(&b, " at %s", group.Job.Company)
		}
		b.WriteString(":\n")

		if len(group.Applicants) == 0 {
			b.WriteString("  (no applicants yet)\n")
			continue
		}
		for _, applicant := range group.Applicants {
			b.WriteString(indent(renderUser(applicant), "  "))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderCountAnnouncement(jobs []result.Job) string {
	var b strings.Builder

	for _, job := range jobs {
		count := 0
		if job.ApplicationCount != nil {
			count = *job.ApplicationCount
		}
		noun := "applications"
		if count == 1 {
			noun = "application"
		}
		fmt.Fprintf(&b, "%s has %d %s.\n", fallback(job.Title, "(untitled)"), count, noun)
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderInterviewList(interviews []result.Interview) string {
	if len(interviews) == 0 {
		return "No interviews scheduled."
	}

	var b strings.Builder
	for _, iv := range interviews {
		fmt.Fprintf(&b, "* interview #%d", iv.InterviewID)
		if iv.Job != nil && iv.Job.Title != "" {
			fmt.Fprintf(&b, " for %s", iv.Job.Title)
		}
		if iv.Candidate != nil && iv.Candidate.FirstName != "" {
			fmt.Fprintf(&b, " with %s", iv.Candidate.FullName())
		}
		if iv.StartTime != "" {
			fmt.Fprintf(&b, " at %s", iv.StartTime)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func fallback(s, alt string) string {
	if strings.TrimSpace(s) == "" {
		return alt
	}
	return s
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n") + "\n"
}
