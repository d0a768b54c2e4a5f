package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/scrumscribe-team/scrumscribe/internal/domain/entities"
	"github.com/scrumscribe-team/scrumscribe/internal/domain/repositories"
	"github.com/scrumscribe-team/scrumscribe/internal/infrastructure/queue"
	"github.com/scrumscribe-team/scrumscribe/internal/infrastructure/telemetry"
	"github.com/scrumscribe-team/scrumscribe/pkg/jobcontext"
)

// BlobFetcher downloads a stored recording
type BlobFetcher interface {
	FetchRecording(ctx context.Context, audioURL string) ([]byte, error)
}

// Transcriber turns a recording into a diarized transcript
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Extractor turns a transcript into a raw JSON document of task drafts
type Extractor interface {
	ExtractTasks(ctx context.Context, transcript string) (string, error)
	Model() string
}

// RunLogger records completed runs for offline analysis; best-effort
type RunLogger interface {
	LogRun(ctx context.Context, record telemetry.RunRecord)
}

// Service runs the ingestion pipeline: fetch recording, transcribe,
// extract task drafts, persist. One call to Process is one run.
type Service struct {
	meetingRepo repositories.MeetingRepository
	userRepo    repositories.UserRepository
	blobs       BlobFetcher
	speech      Transcriber
	extractor   Extractor
	parser      *Parser
	telemetry   RunLogger
	jobQueue    queue.Queue
	logger      *zap.Logger

	workerWg     sync.WaitGroup
	workerCancel context.CancelFunc
	workerMu     sync.Mutex
}

// NewService creates an ingestion service
func NewService(
	meetingRepo repositories.MeetingRepository,
	userRepo repositories.UserRepository,
	blobs BlobFetcher,
	speech Transcriber,
	extractor Extractor,
	runLogger RunLogger,
	jobQueue queue.Queue,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		userRepo:    userRepo,
		blobs:       blobs,
		speech:      speech,
		extractor:   extractor,
		parser:      NewParser(),
		telemetry:   runLogger,
		jobQueue:    jobQueue,
		logger:      logger,
	}
}

// StartWorkerPool launches count workers consuming the job queue
func (s *Service) StartWorkerPool(count int) {
	s.workerMu.Lock()
	defer s.workerMu.Unlock()

	if s.workerCancel != nil {
		s.logger.Warn("⚠️ Worker pool already running")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.workerCancel = cancel

	for i := 0; i < count; i++ {
		s.workerWg.Add(1)
		go s.workerLoop(ctx, i)
	}

	s.logger.Info("🚀 Ingestion worker pool started", zap.Int("workers", count))
}

// StopWorkerPool stops the workers and waits for in-flight runs
func (s *Service) StopWorkerPool() {
	s.workerMu.Lock()
	cancel := s.workerCancel
	s.workerCancel = nil
	s.workerMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.workerWg.Wait()
	s.logger.Info("✅ Ingestion worker pool stopped")
}

func (s *Service) workerLoop(ctx context.Context, workerID int) {
	defer s.workerWg.Done()

	s.logger.Info("👷 Worker started", zap.Int("worker_id", workerID))

	for {
		job, err := s.jobQueue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info("👷 Worker stopping", zap.Int("worker_id", workerID))
				return
			}
			s.logger.Error("❌ Failed to dequeue job",
				zap.Int("worker_id", workerID),
				zap.Error(err))
			continue
		}

		jobCtx, cancel := jobcontext.JobBegin(ctx, job.MeetingID, workerID)
		err = jobcontext.Run(jobCtx, func(runCtx context.Context) error {
			return s.Process(runCtx, job.MeetingID)
		})
		cancel()
		if err != nil {
			s.logger.Error("❌ Ingestion run failed",
				zap.Int("worker_id", workerID),
				zap.String("meeting_id", job.MeetingID.String()),
				zap.Error(err))
		}
	}
}

// Process runs the full pipeline for one meeting. Safe under duplicate
// delivery: the claim below is an atomic queued-to-processing transition,
// so of two concurrent invocations exactly one performs the run.
func (s *Service) Process(ctx context.Context, meetingID uuid.UUID) error {
	started := time.Now()

	claimed, err := s.meetingRepo.ClaimForProcessing(ctx, meetingID)
	if err != nil {
		return fmt.Errorf("failed to claim meeting: %w", err)
	}
	if !claimed {
		s.logger.Info("⏭️ Meeting not in queued state, skipping redelivered job",
			zap.String("meeting_id", meetingID.String()))
		return nil
	}

	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return fmt.Errorf("failed to load meeting: %w", err)
	}
	if meeting == nil {
		return fmt.Errorf("meeting %s vanished after claim", meetingID)
	}

	s.logger.Info("🎙️ Processing meeting",
		zap.String("meeting_id", meetingID.String()),
		zap.String("title", meeting.Title))

	audio, err := s.blobs.FetchRecording(ctx, meeting.AudioURL)
	if err != nil {
		return s.failRun(ctx, meetingID, fmt.Sprintf("download failed: %v", err))
	}

	transcript, err := s.speech.Transcribe(ctx, audio)
	if err != nil {
		return s.failRun(ctx, meetingID, fmt.Sprintf("transcription failed: %v", err))
	}

	// The extractor sees speaker intros so it can attribute statements to
	// known people; the stored transcript stays untouched.
	extractionInput, err := s.augmentWithSpeakerIntros(ctx, transcript)
	if err != nil {
		s.logger.Warn("⚠️ Speaker intro lookup failed, extracting from raw transcript",
			zap.String("meeting_id", meetingID.String()),
			zap.Error(err))
		extractionInput = transcript
	}

	rawDrafts, err := s.extractor.ExtractTasks(ctx, extractionInput)
	if err != nil {
		return s.failRun(ctx, meetingID, fmt.Sprintf("extraction failed: %v", err))
	}

	drafts, err := s.parser.ParseDrafts(rawDrafts)
	if err != nil {
		return s.failRun(ctx, meetingID, fmt.Sprintf("extraction failed: %v", err))
	}

	tasks, err := s.buildTasks(ctx, meetingID, drafts)
	if err != nil {
		return fmt.Errorf("failed to build tasks: %w", err)
	}

	// Transcript, tasks and the status flip land in one transaction;
	// readers see either the old state or the complete run.
	if err := s.meetingRepo.CompleteRun(ctx, meetingID, transcript, tasks); err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}

	s.logger.Info("✅ Meeting processed",
		zap.String("meeting_id", meetingID.String()),
		zap.Int("tasks", len(tasks)),
		zap.Duration("duration", time.Since(started)))

	s.telemetry.LogRun(ctx, telemetry.RunRecord{
		MeetingID:         meetingID,
		Model:             s.extractor.Model(),
		TranscriptExcerpt: transcript,
		DraftCount:        len(tasks),
		DurationMS:        time.Since(started).Milliseconds(),
	})

	return nil
}

// failRun records a terminal failure for this run. Redelivery, if any,
// belongs to the queue; a failed meeting is never re-queued from here.
func (s *Service) failRun(ctx context.Context, meetingID uuid.UUID, reason string) error {
	s.logger.Error("❌ Run failed",
		zap.String("meeting_id", meetingID.String()),
		zap.String("reason", reason))

	if err := s.meetingRepo.MarkRunFailed(ctx, meetingID, reason); err != nil {
		return fmt.Errorf("failed to record run failure (%s): %w", reason, err)
	}
	return nil
}

// augmentWithSpeakerIntros prepends one intro line per known voice so the
// extractor can map diarized speaker slots to real names
func (s *Service) augmentWithSpeakerIntros(ctx context.Context, transcript string) (string, error) {
	users, err := s.userRepo.ListWithVoiceSamples(ctx)
	if err != nil {
		return "", err
	}
	if len(users) == 0 {
		return transcript, nil
	}

	var b strings.Builder
	b.WriteString("Known participants:\n")
	for _, user := range users {
		fmt.Fprintf(&b, "- %s\n", user.DisplayName)
	}
	b.WriteString("\n")
	b.WriteString(transcript)
	return b.String(), nil
}

// buildTasks converts parsed drafts into task rows, resolving assignee
// hints against known users. Unresolved names stay unassigned.
func (s *Service) buildTasks(ctx context.Context, meetingID uuid.UUID, drafts []entities.TaskDraft) ([]entities.Task, error) {
	tasks := make([]entities.Task, 0, len(drafts))
	for _, draft := range drafts {
		task := entities.NewTask(meetingID, draft.Summary)
		task.Description = draft.Description
		task.IssueType = draft.IssueType
		task.Priority = draft.Priority
		task.StoryPoints = draft.StoryPoints
		task.Labels = draft.Labels
		task.Links = draft.Links

		if len(draft.Quotes) > 0 {
			quotes, err := quotesJSON(draft.Quotes)
			if err != nil {
				return nil, err
			}
			task.SourceQuotes = quotes
		}

		if draft.AssigneeName != nil && *draft.AssigneeName != "" {
			user, err := s.userRepo.FindByDisplayName(ctx, *draft.AssigneeName)
			if err != nil {
				return nil, err
			}
			if user != nil {
				task.AssigneeID = &user.ID
			}
		}

		tasks = append(tasks, *task)
	}
	return tasks, nil
}

func quotesJSON(quotes []string) (datatypes.JSON, error) {
	b, err := json.Marshal(quotes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode source quotes: %w", err)
	}
	return datatypes.JSON(b), nil
}
