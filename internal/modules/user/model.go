// README: User account record.
package user

import "kabu/internal/types"

type User struct {
	ID             types.ID
	Email          string
	Age            int
	Gender         string
	HashedPassword string
	// PushToken is the opaque device token for push delivery; empty when
	// the user has not registered a device.
	PushToken string
}
