package jobqueue

import "testing"

func TestJobRetryLifecycle(t *testing.T) {
	job := &Job{Status: JobStatusPending, MaxRetries: 2}

	job.MarkAsProcessing()
	if job.Status != JobStatusProcessing || job.ProcessedAt == nil {
		t.Fatalf("MarkAsProcessing did not update the job: %+v", job)
	}

	job.MarkAsFailed("smtp timeout")
	if job.Status != JobStatusFailed || job.RetryCount != 1 || job.ErrorMsg != "smtp timeout" {
		t.Fatalf("MarkAsFailed did not update the job: %+v", job)
	}
	if !job.IsRetryable() {
		t.Fatalf("first failure should be retryable")
	}

	job.MarkAsFailed("smtp timeout")
	if job.IsRetryable() {
		t.Fatalf("job must not be retryable past MaxRetries")
	}

	job.MarkAsCompleted()
	if job.Status != JobStatusCompleted || job.CompletedAt == nil || job.ErrorMsg != "" {
		t.Fatalf("MarkAsCompleted did not clear the job state: %+v", job)
	}
}

func TestActivationMailPayloadRoundTrip(t *testing.T) {
	in := ActivationMailJobPayload{UserID: 7, Email: "jane@example.com", Name: "Jane", Token: "abc123"}
	out, err := ActivationMailJobPayloadFromMap(in.ToMap())
	if err != nil {
		t.Fatalf("FromMap returned error: %v", err)
	}
	if *out != in {
		t.Fatalf("payload round trip changed data: %+v != %+v", out, in)
	}
}
