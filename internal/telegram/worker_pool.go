package telegram

import (
	"context"
	"sync"
	"time"

	"relay_bot/internal/logger"
	"relay_bot/internal/pipeline"
	"relay_bot/internal/platform"
)

// RelayTask 一条待处理的平台链接
type RelayTask struct {
	ChatID  int64
	ReplyTo int
	Link    platform.Link
}

// relayRunner 执行单个转存任务（由 pipeline.Pipeline 实现）
type relayRunner interface {
	Process(ctx context.Context, chatID int64, replyTo int, link platform.Link)
}

// WorkerPool 下载任务工作池
// 长时间的 yt-dlp 下载在固定数量的 worker 协程中执行，
// 避免单个聊天的慢任务阻塞其他聊天的处理
type WorkerPool struct {
	runner    relayRunner
	chat      pipeline.Messenger
	taskQueue chan RelayTask
	wg        sync.WaitGroup
	workers   int
}

// PoolStats 工作池运行时状态
type PoolStats struct {
	Workers       int
	QueueLength   int
	QueueCapacity int
}

// NewWorkerPool 创建工作池
// workers: worker 协程数量
// queueSize: 任务队列大小
func NewWorkerPool(runner relayRunner, chat pipeline.Messenger, workers, queueSize int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 16
	}

	pool := &WorkerPool{
		runner:    runner,
		chat:      chat,
		taskQueue: make(chan RelayTask, queueSize),
		workers:   workers,
	}

	// 启动 worker goroutines
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	logger.L().Infof("Worker pool started with %d workers, queue size %d", workers, queueSize)
	return pool
}

// worker 工作协程
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	logger.L().Debugf("Worker %d started", id)

	for task := range p.taskQueue {
		p.run(task)
	}

	logger.L().Debugf("Worker %d stopped", id)
}

// run 执行单个任务，带 panic recovery
// recovery 是最后一道防线：记录上下文并通知用户，进程继续运行
func (p *WorkerPool) run(task RelayTask) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Errorf("Relay job panic recovered: %v, chat=%d url=%s", r, task.ChatID, task.Link.URL)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if _, err := p.chat.SendText(ctx, task.ChatID, task.ReplyTo, "An error occurred. Please try again later."); err != nil {
				logger.L().Errorf("Failed to notify user after panic: %v", err)
			}
		}
	}()

	// 任务不随 update 的生命周期取消，运行到终态为止
	p.runner.Process(context.Background(), task.ChatID, task.ReplyTo, task.Link)
}

// Submit 提交任务到工作池，队列已满时返回 false
func (p *WorkerPool) Submit(task RelayTask) bool {
	select {
	case p.taskQueue <- task:
		return true
	default:
		logger.L().Warnf("Worker pool queue is full, task dropped: chat=%d url=%s", task.ChatID, task.Link.URL)
		return false
	}
}

// Stats 返回工作池当前状态
func (p *WorkerPool) Stats() PoolStats {
	return PoolStats{
		Workers:       p.workers,
		QueueLength:   len(p.taskQueue),
		QueueCapacity: cap(p.taskQueue),
	}
}

// Shutdown 优雅关闭工作池
// 等待所有正在执行的任务完成
func (p *WorkerPool) Shutdown() {
	logger.L().Info("Shutting down worker pool...")

	// 关闭任务队列，不再接受新任务
	close(p.taskQueue)

	// 等待所有 worker 完成
	p.wg.Wait()

	logger.L().Info("Worker pool shut down successfully")
}
