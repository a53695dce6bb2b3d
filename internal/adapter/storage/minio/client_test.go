package minio

import (
	"testing"

	"github.com/GoArmGo/UserManager/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000", endpointURL("localhost:9000", false))
	assert.Equal(t, "https://minio.local", endpointURL("minio.local", true))
	assert.Equal(t, "http://already:9000", endpointURL("http://already:9000", true))
}

func TestObjectURL(t *testing.T) {
	c := &Client{baseURL: "http://localhost:9000/", bucketName: "user-exports", logger: logger.Discard()}

	assert.Equal(t, "http://localhost:9000/user-exports/exports/users-1.json", c.ObjectURL("exports/users-1.json"))
}
