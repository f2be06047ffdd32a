// Package session keeps running lava-run levels in memory.
//
// Each session owns its own engine, so sessions never share level state.
// IDs are either chosen by the caller or generated as UUIDs, and lookups
// ignore case. Sessions are not persisted; they live until deleted.
//
// Usage:
//
//	manager := session.NewManager(logger)
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		return err
//	}
//
//	sess, err = manager.Get(sess.ID)
//	sessions := manager.List()
package session
