package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher 监听配置文件变化并重新加载
//
// 监听的是配置文件所在目录而不是文件本身：多数编辑器保存时会先写临时文件再重命名，
// 直接监听文件会在第一次保存后丢失。
type Watcher struct {
	path        string
	watcher     *fsnotify.Watcher
	logger      *zap.Logger
	debounceDur time.Duration
	updates     chan *Config
}

// NewWatcher 创建配置监听器
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:        abs,
		watcher:     fw,
		logger:      logger.Named("config"),
		debounceDur: 100 * time.Millisecond,
		updates:     make(chan *Config, 1),
	}, nil
}

// Updates 返回新配置通道
//
// 通道容量为 1，消费者来不及读取时只保留最新一份配置。
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Run 阻塞运行直到 ctx 取消，返回时关闭底层 fsnotify 监听器
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var (
		pending bool
		timer   = time.NewTimer(time.Hour)
	)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// 合并短时间内的多次写入
			pending = true
			timer.Reset(w.debounceDur)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("config reload rejected", zap.String("path", w.path), zap.Error(err))
		return
	}

	// 丢弃尚未被消费的旧配置
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.logger.Info("config reloaded", zap.String("path", w.path))
}
