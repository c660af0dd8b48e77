package mocks

import (
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// ILogger is a test double for logger.ILogger. Print-family methods are
// no-ops so services under test can log freely without registered expectations.
type ILogger struct {
	mock.Mock
}

func (m *ILogger) Trace() string { return "test-trace" }

func (m *ILogger) SetLabel(key, value string) {}

func (m *ILogger) SetLabels(labels map[string]string) {}

func (m *ILogger) End(ctx *gin.Context) {}

func (m *ILogger) Debug(v ...interface{}) {}

func (m *ILogger) Info(v ...interface{}) {}

func (m *ILogger) Print(v ...interface{}) {}

func (m *ILogger) Warning(v ...interface{}) {}

func (m *ILogger) Error(v ...interface{}) {}

func (m *ILogger) Fatal(v ...interface{}) {}

func (m *ILogger) Debugf(format string, v ...interface{}) {}

func (m *ILogger) Infof(format string, v ...interface{}) {}

func (m *ILogger) Printf(format string, v ...interface{}) {}

func (m *ILogger) Warningf(format string, v ...interface{}) {}

func (m *ILogger) Errorf(format string, v ...interface{}) {}

func (m *ILogger) Fatalf(format string, v ...interface{}) {}

func (m *ILogger) Debugln(v ...interface{}) {}

func (m *ILogger) Infoln(v ...interface{}) {}

func (m *ILogger) Println(v ...interface{}) {}

func (m *ILogger) Warningln(v ...interface{}) {}

func (m *ILogger) Errorln(v ...interface{}) {}

func (m *ILogger) Fatalln(v ...interface{}) {}
