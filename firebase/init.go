package firebase

import (
	"context"
	"log"

	firebase "firebase.google.com/go/v4"

	"github.com/kawerify-tech/flo-orders-app-sub000/common"
)

// App : Firebase App
var App *firebase.App

func init() {
	ctx := context.Background()

	var err error

	App, err = firebase.NewApp(ctx, &firebase.Config{
		ProjectID:   common.ProjectID,
		DatabaseURL: common.RTDBURL,
	})
	if err != nil {
		log.Fatalln(err)
	}
}
