package main

// @title Lifelessons API
// @version 1.0
// @description Backend for the lifelessons content sharing app: lessons, engagement toggles, premium payments and trending
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/mahir/lifelessons
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/mahir/lifelessons/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Users
// @tag.description Identity sync and profile endpoints

// @tag.name Lessons
// @tag.description Lesson management endpoints

// @tag.name Engagement
// @tag.description Like and favorite toggle endpoints

// @tag.name Payments
// @tag.description Checkout and payment reconciliation endpoints

// @tag.name Admin
// @tag.description Admin-only endpoints

// @tag.name Health
// @tag.description Health check endpoints
