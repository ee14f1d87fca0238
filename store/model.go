package store

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/nottarun7/queuectl/job"
	"github.com/nottarun7/queuectl/message"
)

type jobModel struct {
	bun.BaseModel `bun:"table:jobs"`
	Id            string `bun:"id,pk"`

	Command    string `bun:"command,notnull"`
	MaxRetries uint32 `bun:"max_retries,notnull,default:0"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	Status job.Status `bun:"status,notnull,default:1"`

	Attempts     uint32     `bun:"attempts,notnull,default:0"`
	StartedAt    *time.Time `bun:"started_at,nullzero,default:null"`
	CompletedAt  *time.Time `bun:"completed_at,nullzero,default:null"`
	NextRetryAt  *time.Time `bun:"next_retry_at,nullzero,default:null"`
	ErrorMessage *string    `bun:"error_message,default:null"`
	WorkerId     *string    `bun:"worker_id,nullzero,default:null"`

	Metadata map[string]any `bun:"metadata,type:jsonb"`
}

func (jm *jobModel) toJob() *job.Job {
	return &job.Job{
		Message: message.Message{
			Id:         jm.Id,
			Command:    jm.Command,
			MaxRetries: jm.MaxRetries,
			Metadata:   jm.Metadata,
		},
		CreatedAt:    jm.CreatedAt,
		UpdatedAt:    jm.UpdatedAt,
		Status:       jm.Status,
		Attempts:     jm.Attempts,
		StartedAt:    jm.StartedAt,
		CompletedAt:  jm.CompletedAt,
		NextRetryAt:  jm.NextRetryAt,
		ErrorMessage: jm.ErrorMessage,
		WorkerId:     jm.WorkerId,
	}
}

func fromJob(j *job.Job) *jobModel {
	now := time.Now().UTC()
	return &jobModel{
		Id:         j.Id,
		Command:    j.Command,
		MaxRetries: j.MaxRetries,
		Metadata:   j.Metadata,
		CreatedAt:  now,
		UpdatedAt:  now,
		Status:     job.Pending,
	}
}

type workerModel struct {
	bun.BaseModel `bun:"table:workers"`
	WorkerId      string `bun:"worker_id,pk"`

	Pid           int       `bun:"pid,notnull"`
	StartedAt     time.Time `bun:"started_at,nullzero,notnull,default:current_timestamp"`
	LastHeartbeat time.Time `bun:"last_heartbeat,nullzero,notnull,default:current_timestamp"`
	Status        string    `bun:"status,notnull,default:'active'"`
}
