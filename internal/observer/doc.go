// Package observer provides the notification bus used by the trainer core.
// Observers delivers events synchronously to registered listeners, while
// Broadcaster queues them to independent subscribers reading from channels.
package observer
