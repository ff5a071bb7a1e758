package cli

import (
	"context"
)

func (a *App) ListRemarks(ctx context.Context, recordID int64, page, limit int) error {
	res, err := a.remarkService.List(ctx, recordID, page, limit)
	if err != nil {
		return a.failed(ctx, "Failed to load remarks", err)
	}
	printRemarks(a.out, res)
	return nil
}

func (a *App) AddRemark(ctx context.Context, recordID int64, text string) error {
	r, err := a.remarkService.Add(ctx, recordID, text)
	if err != nil {
		return a.failed(ctx, "Failed to add remark", err)
	}
	a.printf("Remark %d added\n", r.ID)
	return nil
}

func (a *App) UpdateRemark(ctx context.Context, recordID, remarkID int64, text string) error {
	if _, err := a.remarkService.Update(ctx, recordID, remarkID, text); err != nil {
		return a.failed(ctx, "Failed to update remark", err)
	}
	a.printf("Remark %d updated\n", remarkID)
	return nil
}

// DeleteRemark asks for confirmation unless assumeYes is set.
func (a *App) DeleteRemark(ctx context.Context, recordID, remarkID int64, assumeYes bool) error {
	if !assumeYes {
		ok, err := confirm(a.reader, "Are you sure you want to delete this remark?", a.out)
		if err != nil {
			return err
		}
		if !ok {
			a.printf("Cancelled\n")
			return nil
		}
	}

	if err := a.remarkService.Delete(ctx, recordID, remarkID); err != nil {
		return a.failed(ctx, "Failed to delete remark", err)
	}
	a.printf("Remark %d deleted\n", remarkID)
	return nil
}
