package helper

import (
	"github.com/google/uuid"
	satoriuuid "github.com/satori/go.uuid"
)

var (
	generateUUID   = uuid.NewString
	generateUUIDV4 = satoriuuid.NewV4
)

// GenerateUUID returns a random (v4) uuid string
func GenerateUUID() string {
	return generateUUID()
}

func GenerateUUIDV4() string {
	return generateUUIDV4().String()
}
