package result

import "testing"

func envelope(data map[string]any) map[string]any {
	return map[string]any{"data": data}
}

func TestClassifyIsTotal(t *testing.T) {
	inputs := []any{
		nil,
		"plain string",
		42,
		[]any{"a", "b"},
		map[string]any{},
		map[string]any{"data": nil},
		map[string]any{"something": "else"},
		envelope(map[string]any{"jobs": "not a list"}),
	}

	for _, input := range inputs {
		view := Classify(input)
		if view.Kind == "" {
			t.Fatalf("expected a kind for input %#v", input)
		}
	}
}

func TestClassifyPriorityApplicantsOverJobList(t *testing.T) {
	// This payload is also a structurally valid plain job list; the
	// applicants rule must win.
	view := Classify(envelope(map[string]any{
		"jobs": []any{
			map[string]any{
				"jobId": float64(5), "title": "Backend Engineer", "company": "Acme",
				"applicants": []any{
					map[string]any{"UserID": float64(9), "firstName": "Raj", "applicationStatus": "Applied"},
				},
			},
		},
	}))

	if view.Kind != KindApplicantsByJob {
		t.Fatalf("expected applicants_by_job, got %s", view.Kind)
	}
	if len(view.JobApplicants) != 1 {
		t.Fatalf("expected one job group, got %d", len(view.JobApplicants))
	}

	group := view.JobApplicants[0]
	if group.Job.JobID != 5 || group.Job.Title != "Backend Engineer" {
		t.Fatalf("unexpected owning job: %+v", group.Job)
	}
	if len(group.Applicants) != 1 || group.Applicants[0].FirstName != "Raj" {
		t.Fatalf("unexpected applicants: %+v", group.Applicants)
	}
}

func TestClassifyCountAnnouncementRequiresEveryElement(t *testing.T) {
	counted := Classify(envelope(map[string]any{
		"jobs": []any{
			map[string]any{"jobId": float64(1), "title": "A", "applicationCount": float64(3)},
			map[string]any{"jobId": float64(2), "title": "B", "applicationCount": float64(0)},
		},
	}))
	if counted.Kind != KindCountAnnouncement {
		t.Fatalf("expected count_announcement, got %s", counted.Kind)
	}
	if *counted.Jobs[0].ApplicationCount != 3 || *counted.Jobs[1].ApplicationCount != 0 {
		t.Fatalf("unexpected counts: %+v", counted.Jobs)
	}

	// One element without the count field demotes the payload to a job list.
	mixed := Classify(envelope(map[string]any{
		"jobs": []any{
			map[string]any{"jobId": float64(1), "applicationCount": float64(3)},
			map[string]any{"jobId": float64(2)},
		},
	}))
	if mixed.Kind != KindJobList {
		t.Fatalf("expected job_list, got %s", mixed.Kind)
	}
}

func TestClassifyEmptyCollections(t *testing.T) {
	jobs := Classify(envelope(map[string]any{"jobs": []any{}}))
	if jobs.Kind != KindJobList || len(jobs.Jobs) != 0 {
		t.Fatalf("expected empty job_list, got %s with %d jobs", jobs.Kind, len(jobs.Jobs))
	}

	users := Classify(envelope(map[string]any{"users": []any{}}))
	if users.Kind != KindUserList || len(users.Users) != 0 {
		t.Fatalf("expected empty user_list, got %s with %d users", users.Kind, len(users.Users))
	}
}

func TestClassifyInterviewAndApplicationLists(t *testing.T) {
	interviews := Classify(envelope(map[string]any{
		"myInterviews": []any{
			map[string]any{"interviewId": float64(1), "startTime": "2025-01-10T10:00:00Z"},
		},
	}))
	if interviews.Kind != KindInterviewList || len(interviews.Interviews) != 1 {
		t.Fatalf("expected interview_list, got %s", interviews.Kind)
	}

	applications := Classify(envelope(map[string]any{
		"myApplications": []any{
			map[string]any{"appId": float64(4), "status": "Invite Sent", "jobId": float64(7)},
		},
	}))
	if applications.Kind != KindApplicationList || len(applications.Applications) != 1 {
		t.Fatalf("expected application_list, got %s", applications.Kind)
	}
	if applications.Applications[0].Status != "Invite Sent" {
		t.Fatalf("unexpected status: %q", applications.Applications[0].Status)
	}
}

func TestClassifySingleApplicationFromStatusUpdate(t *testing.T) {
	view := Classify(envelope(map[string]any{
		"updateApplicationStatusByNames": map[string]any{
			"appId": float64(11), "status": "Hired", "userId": float64(2), "jobId": float64(3),
		},
	}))

	if view.Kind != KindSingleApplication {
		t.Fatalf("expected single_application, got %s", view.Kind)
	}
	if view.Application.Status != "Hired" || view.Application.AppID != 11 {
		t.Fatalf("unexpected application: %+v", view.Application)
	}
}

func TestClassifySingleUserLookupAndMutation(t *testing.T) {
	lookup := Classify(envelope(map[string]any{
		"userById": map[string]any{"UserID": float64(8), "firstName": "Priya", "lastName": "Shah"},
	}))
	if lookup.Kind != KindSingleUser || lookup.MutationSuccess {
		t.Fatalf("expected plain single_user, got %s mutation=%v", lookup.Kind, lookup.MutationSuccess)
	}
	if lookup.User.FullName() != "Priya Shah" {
		t.Fatalf("unexpected user: %+v", lookup.User)
	}

	mutation := Classify(envelope(map[string]any{
		"updateUser": map[string]any{"UserID": float64(8), "firstName": "Priya"},
	}))
	if mutation.Kind != KindSingleUser || !mutation.MutationSuccess {
		t.Fatalf("expected single_user mutation success, got %s mutation=%v", mutation.Kind, mutation.MutationSuccess)
	}
}

func TestClassifyGenericSuccessAndError(t *testing.T) {
	success := Classify(envelope(map[string]any{"apply": true}))
	if success.Kind != KindGenericSuccess {
		t.Fatalf("expected generic_success, got %s", success.Kind)
	}

	failure := Classify(map[string]any{
		"errors": []any{map[string]any{"message": "Access denied"}},
	})
	if failure.Kind != KindGenericError {
		t.Fatalf("expected generic_error, got %s", failure.Kind)
	}
	if failure.Message != "Access denied" {
		t.Fatalf("unexpected message: %q", failure.Message)
	}

	// A success payload with an unrecognized shape is never an error.
	both := Classify(map[string]any{
		"data":   map[string]any{"somethingNew": map[string]any{}},
		"errors": []any{map[string]any{"message": "partial"}},
	})
	if both.Kind != KindGenericSuccess {
		t.Fatalf("expected generic_success when data is non-null, got %s", both.Kind)
	}
}

func TestClassifyUnrecognized(t *testing.T) {
	view := Classify(map[string]any{"response": "Hello! I'm your assistant."})
	if view.Kind != KindUnrecognized {
		t.Fatalf("expected unrecognized, got %s", view.Kind)
	}
}

func TestClassifyWithoutEnvelope(t *testing.T) {
	// Some operations answer with the data map directly.
	view := Classify(map[string]any{
		"jobs": []any{map[string]any{"jobId": float64(1), "title": "SRE"}},
	})
	if view.Kind != KindJobList || len(view.Jobs) != 1 {
		t.Fatalf("expected job_list without envelope, got %s", view.Kind)
	}
}
