package pipeline

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/shouni/go-coloring-kit/internal/builder"
	"github.com/shouni/go-coloring-kit/internal/config"
	"github.com/shouni/go-coloring-kit/pkg/domain"
)

const createdAtLayout = "2006-01-02 15:04"

// ListBooks は保存済みの本を新しい順に表で出力するのだ。
func ListBooks(ctx context.Context, cfg *config.Config, out io.Writer) error {
	appCtx, err := builder.NewAppContext(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	books, err := appCtx.Library.List(ctx)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		fmt.Fprintln(out, "Commencez par créer votre premier livre de coloriage !")
		return nil
	}

	domain.SortNewestFirst(books)
	renderBooks(out, books)
	return nil
}

func renderBooks(out io.Writer, books []domain.Book) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"ID", "Name", "Theme", "Age", "Pages", "Created"})
	for _, b := range books {
		table.Append([]string{
			b.ID,
			b.Name,
			b.Theme,
			string(b.Age),
			strconv.Itoa(len(b.Pages) + 1),
			b.CreatedAt.Local().Format(createdAtLayout),
		})
	}
	table.Render()
}
