//go:build !gcloud

package config

// Validate accepts any local dispatcher configuration. A missing
// PRIMIND_TASKS_URL disables dispatching rather than failing startup.
func (c *DispatcherConfig) Validate() error {
	return nil
}
