package chat

import (
	"strings"
	"testing"

	"github.com/RJBOGA/JAP/internal/result"
)

func TestRenderEmptyListsAreExplicit(t *testing.T) {
	jobs := Render(result.View{Kind: result.KindJobList})
	if !strings.Contains(jobs, "No jobs found") {
		t.Fatalf("expected explicit no-jobs line, got %q", jobs)
	}

	users := Render(result.View{Kind: result.KindUserList})
	if !strings.Contains(users, "No users found") {
		t.Fatalf("expected explicit no-users line, got %q", users)
	}
}

func TestRenderJobList(t *testing.T) {
	out := Render(result.View{
		Kind: result.KindJobList,
		Jobs: []result.Job{
			{Title: "Backend Engineer", Company: "Acme", Location: "London", SkillsRequired: []string{"Go", "SQL"}},
			{Title: "SRE", Company: "Globex"},
		},
	})

	if !strings.Contains(out, "Backend Engineer at Acme (London)") {
		t.Fatalf("missing job line: %q", out)
	}
	if !strings.Contains(out, "skills: Go, SQL") {
		t.Fatalf("missing skills line: %q", out)
	}
	if !strings.Contains(out, "SRE at Globex") {
		t.Fatalf("missing second job: %q", out)
	}
}

func TestRenderApplicantsByJobAnnotatesOwningJob(t *testing.T) {
	out := Render(result.View{
		Kind: result.KindApplicantsByJob,
		JobApplicants: []result.JobApplicants{
			{
				Job: result.Job{JobID: 5, Title: "Backend Engineer", Company: "Acme"},
				Applicants: []result.User{
					{UserID: 9, FirstName: "Raj", LastName: "Patel", ApplicationStatus: "Applied"},
				},
			},
			{
				Job: result.Job{JobID: 6, Title: "Designer"},
			},
		},
	})

	if !strings.Contains(out, "Applicants for Backend Engineer at Acme:") {
		t.Fatalf("missing job header: %q", out)
	}
	if !strings.Contains(out, "Raj Patel") || !strings.Contains(out, "status: Applied") {
		t.Fatalf("missing applicant card: %q", out)
	}
	if !strings.Contains(out, "(no applicants yet)") {
		t.Fatalf("missing empty group line: %q", out)
	}
}

func TestRenderCountAnnouncementPluralizes(t *testing.T) {
	one := 1
	three := 3
	out := Render(result.View{
		Kind: result.KindCountAnnouncement,
		Jobs: []result.Job{
			{Title: "SRE", ApplicationCount: &one},
			{Title: "Backend Engineer", ApplicationCount: &three},
		},
	})

	if !strings.Contains(out, "SRE has 1 application.") {
		t.Fatalf("missing singular count: %q", out)
	}
	if !strings.Contains(out, "Backend Engineer has 3 applications.") {
		t.Fatalf("missing plural count: %q", out)
	}
}

func TestRenderMutationSuccessAnnotation(t *testing.T) {
	out := Render(result.View{
		Kind:            result.KindSingleUser,
		User:            &result.User{FirstName: "Priya", LastName: "Shah"},
		MutationSuccess: true,
	})

	if !strings.HasPrefix(out, "Success!") {
		t.Fatalf("expected success annotation, got %q", out)
	}
	if !strings.Contains(out, "Priya Shah") {
		t.Fatalf("expected user card, got %q", out)
	}
}

func TestRenderGenericKinds(t *testing.T) {
	if out := Render(result.View{Kind: result.KindGenericSuccess}); !strings.Contains(out, "successful") {
		t.Fatalf("unexpected success rendering: %q", out)
	}
	if out := Render(result.View{Kind: result.KindGenericError, Message: "Access denied"}); !strings.Contains(out, "Access denied") {
		t.Fatalf("expected verbatim error message: %q", out)
	}
	if out := Render(result.View{Kind: result.KindUnrecognized}); out == "" {
		t.Fatalf("unrecognized must still render something")
	}
}

func TestTranscriptIsAppendOnly(t *testing.T) {
	var tr Transcript

	tr.Append(TextMessage{Speaker: SpeakerUser, Text: "find jobs"})
	tr.Append(ResultMessage{Speaker: SpeakerAssistant, View: result.View{Kind: result.KindJobList}})

	if tr.Len() != 2 {
		t.Fatalf("expected 2 messages, got %d", tr.Len())
	}

	msgs := tr.Messages()
	if msgs[0].Who() != SpeakerUser || msgs[1].Who() != SpeakerAssistant {
		t.Fatalf("unexpected order: %v %v", msgs[0].Who(), msgs[1].Who())
	}

	// Mutating the returned slice must not affect the transcript.
	msgs[0] = TextMessage{Speaker: SpeakerAssistant, Text: "tampered"}
	if tr.Messages()[0].(TextMessage).Text != "find jobs" {
		t.Fatalf("transcript was mutated through the copy")
	}

	last, ok := tr.Last().(ResultMessage)
	if !ok || last.View.Kind != result.KindJobList {
		t.Fatalf("unexpected last message: %#v", tr.Last())
	}
}
