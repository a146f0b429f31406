package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	TriggerStartup  = "startup"
	TriggerInterval = "interval"
	TriggerManual   = "manual"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// TaskFactory builds the task to run for one trigger.
type TaskFactory func(trigger string) TaskInterface

// Scheduler runs refresh tasks on a single worker. The queue holds one
// pending task, so at most one cycle runs and one waits; further triggers
// are dropped.
type Scheduler struct {
	newTask     TaskFactory
	interval    time.Duration
	taskTimeout time.Duration
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewScheduler(newTask TaskFactory, interval, taskTimeout time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	if taskTimeout <= 0 {
		taskTimeout = 10 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		newTask:     newTask,
		interval:    interval,
		taskTimeout: taskTimeout,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 1),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.worker()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueue(TriggerStartup)

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueue(TriggerInterval)
			}
		}
	}()

	slog.Info("Scheduler started", "interval", s.interval, "task_timeout", s.taskTimeout)
}

// Stop cancels the running task, if any, and waits for the worker to exit.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}

	select {
	case s.taskQueue <- task:
		return nil
	default:
		return fmt.Errorf("task queue is full")
	}
}

// Trigger enqueues a new task built for trigger.
func (s *Scheduler) Trigger(trigger string) error {
	return s.EnqueueTask(s.newTask(trigger))
}

func (s *Scheduler) enqueue(trigger string) {
	if err := s.Trigger(trigger); err != nil {
		slog.Warn("Refresh trigger dropped", "trigger", trigger, "error", err)
	}
}

func (s *Scheduler) worker() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case task := <-s.taskQueue:
			s.executeTask(task)
		}
	}
}

func (s *Scheduler) executeTask(task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, s.taskTimeout)
	defer cancel()

	if err := task.Execute(taskCtx); err != nil {
		slog.Error("Task execution failed",
			"type", string(task.GetType()),
			"id", task.GetID(),
			"trigger", task.GetTrigger(),
			"duration", task.GetDuration(),
			"error", err)
	}
}
