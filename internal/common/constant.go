// Package common contains shared constants, sentinel errors and small helpers
// used across gophcloud components.
package common

// UserInfoKey is the durable storage key holding the current identity.
const UserInfoKey = "cloudUserInfo"

// FilesKeyPrefix prefixes the per-identity durable slot with media metadata.
const FilesKeyPrefix = "cloudFiles-"

// FilesKey returns the durable slot key for the given identity id.
func FilesKey(identityID string) string {
	return FilesKeyPrefix + identityID
}
