package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/IlianBuh/Blog-service/internal/frontend/editor"
	"github.com/IlianBuh/Blog-service/internal/lib/logger/sl"
	postsclient "github.com/IlianBuh/Blog-service/internal/transport/posts-client"
	"github.com/brianvoe/gofakeit"
)

func main() {
	var (
		addr    string
		count   int
		timeout time.Duration
	)

	flag.StringVar(&addr, "addr", "localhost:20203", "address of the posts grpc server")
	flag.IntVar(&count, "count", 20, "number of posts to create")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "timeout of a single call")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client, err := postsclient.New(log, addr, timeout)
	if err != nil {
		log.Error("failed to create client", sl.Err(err))
		os.Exit(1)
	}
	defer client.Stop()

	gofakeit.Seed(time.Now().UnixNano())
	md := editor.NewMarkdown("")
	body := editor.New(md)

	created := 0
	for i := 0; i < count; i++ {
		md.SetContents(markdownPost())

		_, err := client.CreatePost(
			context.Background(),
			gofakeit.Sentence(rand.Intn(6)+3),
			body.Content(),
			gofakeit.Name(),
		)
		if err != nil {
			log.Error("failed to create post", sl.Err(err))
			continue
		}
		created++
	}

	log.Info("seeding is finished", slog.Int("created", created), slog.Int("requested", count))
}

// markdownPost returns a few paragraphs, a list and an occasional quote
func markdownPost() string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", gofakeit.Sentence(rand.Intn(4)+2))
	b.WriteString(gofakeit.Paragraph(rand.Intn(2)+1, 3, rand.Intn(15)+10, "\n\n"))
	b.WriteString("\n\n")

	items := rand.Intn(4)
	for i := 0; i < items; i++ {
		fmt.Fprintf(&b, "* **%s** %s\n", gofakeit.HackerVerb(), gofakeit.Sentence(5))
	}

	if rand.Intn(2) == 0 {
		fmt.Fprintf(&b, "\n> %s\n", gofakeit.HackerPhrase())
	}

	return b.String()
}
