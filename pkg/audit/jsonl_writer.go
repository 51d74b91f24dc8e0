package audit

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

// JSONLWriter consumes invocation events and appends them to
// <dir>/<YYYY-MM-DD>.jsonl, one event per line.
type JSONLWriter struct {
	sub message.Subscriber
	dir string
}

func NewJSONLWriter(sub message.Subscriber, dir string) *JSONLWriter {
	return &JSONLWriter{sub: sub, dir: dir}
}

// Run blocks consuming events until ctx is canceled or the subscription
// closes. Individual write failures are ignored; losing an audit line is
// preferable to backing up the bus.
func (w *JSONLWriter) Run(ctx context.Context) error {
	msgs, err := w.sub.Subscribe(ctx, TopicAIInvocation)
	if err != nil {
		return err
	}

	for msg := range msgs {
		w.append(msg.Payload)
		msg.Ack()
	}
	return nil
}

func (w *JSONLWriter) append(line []byte) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return
	}
	day := time.Now().Format("2006-01-02")
	f, err := os.OpenFile(filepath.Join(w.dir, day+".jsonl"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.Write(append(line, '\n'))
}
