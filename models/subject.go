package models

import "time"

// Subject is one course in the catalog, backed by a YouTube playlist.
// The built-in catalog ships with the binary; admin-registered subjects are
// persisted alongside it.
type Subject struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	PlaylistID  string    `gorm:"not null" json:"playlist_id"`
	Custom      bool      `gorm:"default:false" json:"custom,omitempty"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Resource is static reference material attached to a subject (pure data).
type Resource struct {
	ID          string `json:"id"`
	SubjectID   string `json:"subject_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Type        string `json:"type"` // pdf, link, code
}

// BuiltinSubjects is the static course catalog.
var BuiltinSubjects = []Subject{
	{
		ID:          "csharp",
		Title:       "C# Basics",
		Description: "Learn C# fundamentals, syntax, and object-oriented programming concepts.",
		Icon:        "Code",
		PlaylistID:  "PLdo4fOcmZ0oVxKLQCHpiUWun7vlJJvUiN",
	},
	{
		ID:          "aspnet",
		Title:       "ASP.NET Core",
		Description: "Build modern, cloud-based, internet-connected applications with ASP.NET Core.",
		Icon:        "Globe",
		PlaylistID:  "PLdo4fOcmZ0oW8nviYduHq7bmKode-p8Wy",
	},
	{
		ID:          "blazor",
		Title:       "Blazor",
		Description: "Build interactive web UIs using C# instead of JavaScript with Blazor.",
		Icon:        "Layout",
		PlaylistID:  "PLdo4fOcmZ0oUP_ibrodtTK7bF_OgP-XD_",
	},
	{
		ID:          "entity-framework",
		Title:       "Entity Framework",
		Description: "Master database access with Entity Framework Core ORM.",
		Icon:        "Database",
		PlaylistID:  "PLdo4fOcmZ0oX7uTkjYwvCJDG2qhcSzwZ6",
	},
	{
		ID:          "maui",
		Title:       ".NET MAUI",
		Description: "Build cross-platform mobile and desktop apps with .NET MAUI.",
		Icon:        "Server",
		PlaylistID:  "PLdo4fOcmZ0oUBH_LISM8AkF-OH2lxN3K5",
	},
}

// BuiltinResources maps subject id to its static resource list.
var BuiltinResources = map[string][]Resource{
	"csharp": {
		{
			ID:          "csharp-1",
			SubjectID:   "csharp",
			Title:       "C# Language Fundamentals",
			Description: "PDF covering the basics of C# language syntax.",
			URL:         "/resources/csharp-fundamentals.pdf",
			Type:        "pdf",
		},
		{
			ID:          "csharp-2",
			SubjectID:   "csharp",
			Title:       "OOP in C# Cheat Sheet",
			Description: "Quick reference for OOP principles in C#.",
			URL:         "/resources/oop-csharp.pdf",
			Type:        "pdf",
		},
	},
	"aspnet": {
		{
			ID:          "aspnet-1",
			SubjectID:   "aspnet",
			Title:       "ASP.NET Core Architecture",
			Description: "PDF explaining ASP.NET Core architecture and components.",
			URL:         "/resources/aspnet-architecture.pdf",
			Type:        "pdf",
		},
		{
			ID:          "aspnet-2",
			SubjectID:   "aspnet",
			Title:       "Sample API Project",
			Description: "Working code sample for RESTful API in ASP.NET Core.",
			URL:         "https://github.com/dotnet/AspNetCore.Docs/tree/main/aspnetcore/tutorials/first-web-api/samples",
			Type:        "link",
		},
	},
	"blazor": {
		{
			ID:          "blazor-1",
			SubjectID:   "blazor",
			Title:       "Blazor Component Model",
			Description: "Deep dive into the Blazor component model.",
			URL:         "/resources/blazor-components.pdf",
			Type:        "pdf",
		},
	},
	"entity-framework": {
		{
			ID:          "ef-1",
			SubjectID:   "entity-framework",
			Title:       "EF Core Migrations",
			Description: "Guide to working with EF Core migrations.",
			URL:         "/resources/ef-migrations.pdf",
			Type:        "pdf",
		},
		{
			ID:          "ef-2",
			SubjectID:   "entity-framework",
			Title:       "Sample Repository Pattern",
			Description: "Code sample implementing the repository pattern with EF Core.",
			URL:         "https://github.com/dotnet/EntityFramework.Docs/tree/main/samples/core/Querying",
			Type:        "link",
		},
	},
	"maui": {
		{
			ID:          "maui-1",
			SubjectID:   "maui",
			Title:       "MAUI UI Controls",
			Description: "Complete reference of MAUI UI controls and their properties.",
			URL:         "/resources/maui-controls.pdf",
			Type:        "pdf",
		},
	},
}

// PlaylistCountCache holds the last-known video count per subject playlist so
// completion math keeps working while the catalog provider is unreachable.
type PlaylistCountCache struct {
	SubjectID  string    `gorm:"primaryKey" json:"subject_id"`
	PlaylistID string    `json:"playlist_id"`
	VideoCount int       `gorm:"default:0" json:"video_count"`
	SyncedAt   time.Time `json:"synced_at"`
}
