package services_test

import (
	"github.com/campusconnect/campusconnect-api/pkg/logger"
)

func init() {
	logger.InitializeForTest()
}
