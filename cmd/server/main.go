// @title           LLM-LMS API
// @version         1.0
// @description     AI tutor chat, quiz generation and study file uploads.
// @BasePath        /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"os"

	"llm-lms/backend/internal/app"
)

func main() {
	os.Exit(app.Run())
}
