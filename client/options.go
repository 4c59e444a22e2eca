package processing

import "github.com/lverhagen/agentlink/client/tools"

const defaultObserverBuffer = 64

type ProcessorOption func(*Processor)

// WithObserverBuffer sets the per-subscriber notification buffer. Once a
// subscriber falls this far behind, notifications are dropped for it.
func WithObserverBuffer(size int) ProcessorOption {
	return func(p *Processor) {
		if size > 0 {
			p.notifier = newNotifier(size)
		}
	}
}

// WithClientTools registers locally declared tools into the catalog of
// every session the processor creates.
func WithClientTools(clientTools ...tools.Tool) ProcessorOption {
	return func(p *Processor) {
		p.clientTools = append(p.clientTools, clientTools...)
	}
}

// WithNotificationCallback subscribes an observer at construction time.
func WithNotificationCallback(callback func(Notification)) ProcessorOption {
	return func(p *Processor) {
		p.notifier.subscribe(callback)
	}
}
