package common

import (
	"log"
	"math"
	"os"

	"github.com/gin-gonic/gin"
)

var (
	// ProjectID is the GCP project backing Firestore and the Realtime Database.
	ProjectID string

	// RTDBURL is the Realtime Database instance URL used for presence and chat.
	RTDBURL string

	// Service name reported to logging and crash reporting.
	Service string

	// Production flag indicating if the service runs against the production project.
	Production bool

	// IsLocalhost flag indicating if the service runs on a developer machine.
	IsLocalhost bool
)

// CtxKeys are the gin context keys populated by the auth middleware. The
// identity carries the caller's email and role; the uid gets its own key as
// the value almost every handler reads.
var CtxKeys = struct {
	UID      string
	Identity string
}{
	UID:      "flo-uid",
	Identity: "flo-identity",
}

const productionProject = "flo-orders-prod"

func init() {
	initEnvVariables()
}

func initEnvVariables() {
	ProjectID = GetEnv("GOOGLE_CLOUD_PROJECT", "")
	if ProjectID == "" {
		ProjectID = "flo-orders-dev"

		log.Printf("environment variable GOOGLE_CLOUD_PROJECT is not set, using %s", ProjectID)
	}

	RTDBURL = GetEnv("FLO_RTDB_URL", "https://"+ProjectID+"-default-rtdb.firebaseio.com")
	Service = GetEnv("FLO_SERVICE", "flo-orders-api")

	IsLocalhost = gin.Mode() != gin.ReleaseMode
	Production = ProjectID == productionProject

	if value := os.Getenv("FIRESTORE_EMULATOR_HOST"); value != "" {
		log.Printf("Using Firestore Emulator: %s", value)
	}
}

// GetEnv returns the value of the environment variable named by key,
// or fallback when it is unset.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

// Round2 rounds v half-up to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
