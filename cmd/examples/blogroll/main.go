package main

import (
	"context"
	"fmt"
	"log"

	"github.com/goliatone/go-linklist/pkg/commands"
	"github.com/goliatone/go-linklist/pkg/config"
	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/logger"
	"github.com/goliatone/go-linklist/pkg/linklist"
)

func main() {
	ctx := context.Background()
	cfg := config.Defaults()
	cfg.Links.Class = "blogroll"

	module, err := linklist.NewModule(ctx, linklist.ModuleOptions{
		Config: cfg,
		Logger: logger.New(),
		Forms: []domain.Form{{
			Name: "blogroll",
			Body: `{{ linkdesctitle() }}{% if if_last_link() %} (page {{ paging.page }} of {{ paging.num_pages }}){% endif %}`,
		}},
	})
	if err != nil {
		log.Fatalf("module: %v", err)
	}
	defer module.Close()

	links := []commands.SaveLink{
		{Name: "Go", URL: "https://go.dev", Category: "friends", Description: "The Go site"},
		{Name: "Bun", URL: "https://bun.uptrace.dev", Category: "friends", Description: "SQL-first ORM"},
		{Name: "pongo2", URL: "https://github.com/flosch/pongo2", Category: "friends", Description: "Django-syntax templates"},
	}
	for _, msg := range links {
		if err := module.Commands().SaveLink.Execute(ctx, msg); err != nil {
			log.Fatalf("save link: %v", err)
		}
	}

	for page := 1; page <= 2; page++ {
		scope := module.NewScope(domain.Request{Page: page})
		out, err := module.Render(ctx, scope, `{{ linklist("category", "friends", "form", "blogroll", "pageby", "2", "limit", "2", "wraptag", "ul", "break", "li", "label", "Friends", "labeltag", "h3") }}`)
		if err != nil {
			log.Fatalf("render: %v", err)
		}
		fmt.Printf("page %d\n%s\n\n", page, out)
	}
}
