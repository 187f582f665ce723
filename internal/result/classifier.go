// Package result turns the backend's untyped, operation-dependent result
// payloads into a tagged View the renderer can dispatch on. Classification
// is an explicit ordered rule list evaluated first-match-wins, so the
// priority between structurally overlapping shapes is a testable artifact
// rather than a side effect of nested conditionals.
package result

import "github.com/mitchellh/mapstructure"

// rule is one predicate/extractor pair. A rule either claims the payload
// and produces a View, or passes.
type rule struct {
	name  string
	match func(data map[string]any) (View, bool)
}

// rules in strict priority order. More specific shapes come first: a
// jobs-with-applicants payload also looks like a plain job list, and must
// not be rendered as one.
var rules = []rule{
	{"interview_list", matchInterviewList},
	{"application_list", matchApplicationList},
	{"single_application", matchSingleApplication},
	{"count_announcement", matchCountAnnouncement},
	{"applicants_by_job", matchApplicantsByJob},
	{"job_list", matchJobList},
	{"user_list", matchUserList},
	{"single_user", matchSingleUser},
	{"user_mutation", matchUserMutation},
}

// Classify maps any raw result payload to exactly one View. It is total:
// malformed or unknown payloads fall through to generic success, error or
// unrecognized views, never a panic.
func Classify(raw any) View {
	payload, ok := raw.(map[string]any)
	if !ok {
		return View{Kind: KindUnrecognized}
	}

	data, hasData := payload["data"].(map[string]any)
	scope := data
	if !hasData {
		// Some operations answer without the envelope; run the rules over
		// the payload itself before falling back.
		scope = payload
	}

	if scope != nil {
		for _, r := range rules {
			if view, ok := r.match(scope); ok {
				return view
			}
		}
	}

	// An unrecognized payload that still carries a non-null data envelope
	// is a success, not an error.
	if d, ok := payload["data"]; ok && d != nil {
		return View{Kind: KindGenericSuccess}
	}

	if msg, ok := firstErrorMessage(payload); ok {
		return View{Kind: KindGenericError, Message: msg}
	}

	return View{Kind: KindUnrecognized}
}

func matchInterviewList(data map[string]any) (View, bool) {
	items, ok := listUnderAnyKey(data, "myInterviews", "interviews")
	if !ok {
		return View{}, false
	}

	var interviews []Interview
	if !decodeRecords(items, &interviews) {
		return View{}, false
	}

	return View{Kind: KindInterviewList, Interviews: interviews}, true
}

func matchApplicationList(data map[string]any) (View, bool) {
	items, ok := listUnderAnyKey(data, "myApplications", "applications")
	if !ok {
		return View{}, false
	}

	var applications []Application
	if !decodeRecords(items, &applications) {
		return View{}, false
	}

	return View{Kind: KindApplicationList, Applications: applications}, true
}

// singleApplicationKeys are the mutations whose result is one updated
// application record.
var singleApplicationKeys = []string{
	"updateApplicationStatusByNames",
	"updateApplicationStatus",
	"updateApplication",
}

func matchSingleApplication(data map[string]any) (View, bool) {
	for _, key := range singleApplicationKeys {
		record, ok := data[key].(map[string]any)
		if !ok {
			continue
		}

		var application Application
		if err := mapstructure.WeakDecode(record, &application); err != nil {
			continue
		}

		return View{Kind: KindSingleApplication, Application: &application}, true
	}

	return View{}, false
}

func matchCountAnnouncement(data map[string]any) (View, bool) {
	items, ok := listUnderAnyKey(data, "jobs")
	if !ok || len(items) == 0 {
		return View{}, false
	}

	// Every element must carry the count field, otherwise this is a job
	// list that happens to be partially annotated.
	for _, item := range items {
		job, ok := item.(map[string]any)
		if !ok {
			return View{}, false
		}
		if _, ok := job["applicationCount"]; !ok {
			return View{}, false
		}
	}

	var jobs []Job
	if !decodeRecords(items, &jobs) {
		return View{}, false
	}

	return View{Kind: KindCountAnnouncement, Jobs: jobs}, true
}

func matchApplicantsByJob(data map[string]any) (View, bool) {
	items, ok := listUnderAnyKey(data, "jobs")
	if !ok || len(items) == 0 {
		return View{}, false
	}

	first, ok := items[0].(map[string]any)
	if !ok {
		return View{}, false
	}
	if _, ok := first["applicants"].([]any); !ok {
		return View{}, false
	}

	var jobs []Job
	if !decodeRecords(items, &jobs) {
		return View{}, false
	}

	groups := make([]JobApplicants, 0, len(jobs))
	for _, job := range jobs {
		applicants := job.Applicants
		job.Applicants = nil
		groups = append(groups, JobApplicants{Job: job, Applicants: applicants})
	}

	return View{Kind: KindApplicantsByJob, JobApplicants: groups}, true
}

func matchJobList(data map[string]any) (View, bool) {
	items, ok := listUnderAnyKey(data, "jobs")
	if !ok {
		return View{}, false
	}

	// An empty collection is a valid "no results" answer, not an error.
	jobs := make([]Job, 0, len(items))
	if !decodeRecords(items, &jobs) {
		return View{}, false
	}

	return View{Kind: KindJobList, Jobs: jobs}, true
}

func matchUserList(data map[string]any) (View, bool) {
	items, ok := listUnderAnyKey(data, "users")
	if !ok {
		return View{}, false
	}

	users := make([]User, 0, len(items))
	if !decodeRecords(items, &users) {
		return View{}, false
	}

	return View{Kind: KindUserList, Users: users}, true
}

func matchSingleUser(data map[string]any) (View, bool) {
	record, ok := data["userById"].(map[string]any)
	if !ok {
		return View{}, false
	}

	var user User
	if err := mapstructure.WeakDecode(record, &user); err != nil {
		return View{}, false
	}

	return View{Kind: KindSingleUser, User: &user}, true
}

// userMutationKeys are the operations whose result is the created or
// updated user profile.
var userMutationKeys = []string{"createUser", "updateUser", "addSkills", "addSkillsToUser"}

func matchUserMutation(data map[string]any) (View, bool) {
	for _, key := range userMutationKeys {
		record, ok := data[key].(map[string]any)
		if !ok {
			continue
		}

		var user User
		if err := mapstructure.WeakDecode(record, &user); err != nil {
			continue
		}

		return View{Kind: KindSingleUser, User: &user, MutationSuccess: true}, true
	}

	return View{}, false
}

// listUnderAnyKey returns the first array found under one of the keys. A
// null value under a key counts as an empty list.
func listUnderAnyKey(data map[string]any, keys ...string) ([]any, bool) {
	for _, key := range keys {
		raw, present := data[key]
		if !present {
			continue
		}
		if raw == nil {
			return []any{}, true
		}
		if items, ok := raw.([]any); ok {
			return items, true
		}
	}
	return nil, false
}

// decodeRecords decodes a JSON array into a typed slice, tolerating ids
// that arrive as numbers or strings.
func decodeRecords(items []any, target any) bool {
	return mapstructure.WeakDecode(items, target) == nil
}

func firstErrorMessage(payload map[string]any) (string, bool) {
	raw, ok := payload["errors"].([]any)
	if !ok || len(raw) == 0 {
		return "", false
	}

	if entry, ok := raw[0].(map[string]any); ok {
		if msg, ok := entry["message"].(string); ok && msg != "" {
			return msg, true
		}
	}

	return "an unspecified backend error occurred", true
}
