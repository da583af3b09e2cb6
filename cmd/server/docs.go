package main

// @title Mundiclass Backend API
// @version 1.0
// @description Inventory and sales management backend: catalog, clients, tiered pricing, purchases and deletion audit log.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT obtained from POST /api/users/login, sent as "Bearer {token}"
