package opsdeck

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"opsdeck/collection"
	nt "opsdeck/entity"
	"opsdeck/style"
	"opsdeck/table"
)

// Summary renders the store's records through layout as a plain table
// followed by the bucket counts.
func Summary(ctx context.Context, store Store, layout *Layout, search string, lgr nt.Logger) (out string, err error) {

	records, err := store.Records(ctx)
	if err != nil {
		err = errors.Wrapf(err, "failed to load from %s", store.Name())
		return
	}

	view, err := layout.View(records)
	if err != nil {
		return
	}

	fields := store.Fields()
	columns := layout.ColumnsFor(fields)
	view = view.SetFilter(SearchSlot, collection.Search(search, layout.SearchFields(columns)...))

	result, err := view.Result()
	if err != nil {
		return
	}
	if result.UnknownSort {
		lgr.Info(ctx, "sort field not found in records", "field", result.Sort.Field)
	}
	if len(result.UnknownSlots) > 0 {
		lgr.Info(ctx, "filter fields not found in records, slots skipped", "slots", result.UnknownSlots)
	}
	lgr.Info(ctx, "summary", "shown", len(result.Records), "total", result.Total, "slots", view.Slots().Active())

	var bld strings.Builder

	pnl := table.NewTablePanel(ctx, columns, fields, lgr)
	bld.WriteString(pnl.RenderAll(result.Records, result.Sort))
	bld.WriteString("\n\n")

	bld.WriteString(style.TitleStyle.Render(fmt.Sprintf("%d of %d records from %s", len(result.Records), result.Total, store.Name())))
	bld.WriteString("\n")
	if layout.Buckets == nil {
		out = bld.String()
		return
	}
	for _, bucket := range result.Counts.Sorted() {
		line := fmt.Sprintf("  %-12s %d", bucket.Key, bucket.Count)
		bld.WriteString(style.BucketStyle(bucket.Key).Render(line) + "\n")
	}

	out = bld.String()
	return
}
