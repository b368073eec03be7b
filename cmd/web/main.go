// @title           HireTalent API
// @version         1.0
// @description     Hiring lifecycle API: jobs, applications, interviews, offers.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /api/v1

package main

import "hiretalent_backend/internal/app"

func main() {
	app.Run()
}
