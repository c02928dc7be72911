// cmd/main.go
package main

import (
	"echotrace-api/app"
	_ "echotrace-api/docs"
)

// @title           EchoTrace API
// @version         1.0
// @description     Personal engineering-log tracker: problems, solutions and attachments behind token-based auth.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
