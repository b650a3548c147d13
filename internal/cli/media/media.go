package media

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/render"
	"github.com/julianstephens/habitual/internal/state"
)

type MediaCmd struct {
	Add    MediaAddCmd    `cmd:"" help:"Log a book, movie, game or drawing."`
	List   MediaListCmd   `cmd:"" help:"List media."`
	Status MediaStatusCmd `cmd:"" help:"Change the status or rating of a media item."`
	Delete MediaDeleteCmd `cmd:"" help:"Delete a media item (and a collection's contents)."`
}

func resolveMedia(ctx *cli.Context, ref string) (models.MediaItem, error) {
	m, ok := state.FindMedia(ctx.State.State(), ref)
	if !ok {
		return models.MediaItem{}, fmt.Errorf("%w: %q", state.ErrMediaNotFound, ref)
	}
	return m, nil
}

type MediaAddCmd struct {
	Title       string `arg:"" help:"Title."`
	Type        string `short:"t" help:"Media type." enum:"book,movie,game,drawing" default:"book"`
	Status      string `short:"s" help:"Status." enum:"ongoing,completed,paused" default:"ongoing"`
	Series      string `help:"Series title or author."`
	Season      string `help:"Season label."`
	Volume      int    `help:"Volume number."`
	Episode     int    `help:"Episode number."`
	Rating      int    `short:"r" help:"Rating from 0 to 5."`
	Collection  bool   `help:"Create a collection that can hold other items."`
	Parent      string `short:"p" help:"Collection this item belongs to (title or ID)."`
	Description string `help:"Description."`
	Image       string `help:"Cover image URL."`
}

func (c *MediaAddCmd) Run(ctx *cli.Context) error {
	item := models.MediaItem{
		Type:          models.MediaType(c.Type),
		Title:         c.Title,
		SeriesTitle:   c.Series,
		SeasonNumber:  c.Season,
		VolumeNumber:  c.Volume,
		EpisodeNumber: c.Episode,
		Image:         c.Image,
		Status:        models.MediaStatus(c.Status),
		Rating:        c.Rating,
		Description:   c.Description,
		IsCollection:  c.Collection,
	}
	if c.Parent != "" {
		parent, err := resolveMedia(ctx, c.Parent)
		if err != nil {
			return err
		}
		item.ParentID = parent.ID
	}

	st, err := ctx.Dispatch(state.AddMedia{Item: item})
	if err != nil {
		return err
	}
	added := st.Media[len(st.Media)-1]
	ctx.Printf("Added %s: %s\n", added.Type, added.Title)
	ctx.Printf("ID: %s\n", added.ID)
	return nil
}

type MediaListCmd struct {
	Type   string `short:"t" help:"Only this media type (book|movie|game|drawing)."`
	Status string `short:"s" help:"Only this status (ongoing|completed|paused)."`
}

func (c *MediaListCmd) Run(ctx *cli.Context) error {
	st := ctx.State.State()
	items := state.MediaByType(st, models.MediaType(c.Type))

	printed := 0
	var walk func(items []models.MediaItem, depth int)
	walk = func(items []models.MediaItem, depth int) {
		for _, m := range items {
			if c.Status == "" || string(m.Status) == c.Status {
				ctx.Println(strings.Repeat("  ", depth) + line(m))
				printed++
			}
			if m.IsCollection {
				walk(state.MediaChildren(st, m.ID), depth+1)
			}
		}
	}

	var roots []models.MediaItem
	for _, m := range items {
		if m.ParentID == "" {
			roots = append(roots, m)
		}
	}
	walk(roots, 0)

	if printed == 0 {
		ctx.Println("No media found.")
	}
	return nil
}

func line(m models.MediaItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", m.Status, m.Title)
	if m.IsCollection {
		b.WriteString("/")
	}
	if m.SeriesTitle != "" {
		fmt.Fprintf(&b, " (%s)", m.SeriesTitle)
	}
	if m.VolumeNumber > 0 {
		fmt.Fprintf(&b, " vol. %d", m.VolumeNumber)
	}
	if m.Rating > 0 {
		b.WriteString(" " + strings.Repeat("★", m.Rating))
	}
	if m.CompletedDate != "" {
		b.WriteString(render.Muted.Render(" finished " + m.CompletedDate))
	}
	b.WriteString(render.Muted.Render("  " + string(m.Type) + " " + m.ID))
	return b.String()
}

type MediaStatusCmd struct {
	Item   string `arg:"" help:"Title or ID."`
	Status string `arg:"" help:"New status." enum:"ongoing,completed,paused"`
	Rating *int   `short:"r" help:"New rating from 0 to 5."`
}

func (c *MediaStatusCmd) Run(ctx *cli.Context) error {
	m, err := resolveMedia(ctx, c.Item)
	if err != nil {
		return err
	}
	if _, err := ctx.Dispatch(state.UpdateMediaStatus{ID: m.ID, Status: models.MediaStatus(c.Status), Rating: c.Rating}); err != nil {
		return err
	}
	ctx.Printf("%s is now %s\n", m.Title, c.Status)
	return nil
}

type MediaDeleteCmd struct {
	Item string `arg:"" help:"Title or ID."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *MediaDeleteCmd) Run(ctx *cli.Context) error {
	m, err := resolveMedia(ctx, c.Item)
	if err != nil {
		return err
	}
	prompt := fmt.Sprintf("Delete %s?", m.Title)
	if m.IsCollection {
		prompt = fmt.Sprintf("Delete %s and everything in it?", m.Title)
	}
	if !c.Yes && !ctx.Confirm(prompt) {
		ctx.Println("Cancelled.")
		return nil
	}
	if _, err := ctx.Dispatch(state.DeleteMedia{ID: m.ID}); err != nil {
		return err
	}
	ctx.Printf("Deleted: %s\n", m.Title)
	return nil
}
