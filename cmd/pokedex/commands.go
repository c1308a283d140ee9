package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/albapepper/pokedex/internal/browse"
	"github.com/albapepper/pokedex/internal/compare"
	"github.com/albapepper/pokedex/internal/favorites"
	"github.com/albapepper/pokedex/internal/provider"
	"github.com/albapepper/pokedex/internal/render"
)

// --------------------------------------------------------------------------
// list command
// --------------------------------------------------------------------------

func listCmd() *cobra.Command {
	var (
		q        browse.Query
		sortKey  string
		desc     bool
		page     int
		perPage  int
		favsOnly bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog with search, type filters, sorting and paging",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := q.Validate(); err != nil {
				return err
			}
			key, err := browse.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			return run(cmd, func(ctx context.Context, a *app) error {
				records, err := a.loader.LoadCatalog(ctx)
				if err != nil {
					return err
				}
				var isFavorite func(int) bool
				if favsOnly {
					set, err := a.favoriteSet(ctx)
					if err != nil {
						return err
					}
					records = favorites.Select(records, set.IDs())
					isFavorite = set.Contains
				} else {
					isFavorite = a.favoriteMarks(ctx)
				}
				size := perPage
				if size == 0 {
					size = a.cfg.PageSize
				}
				result := browse.Paginate(browse.Sort(browse.Filter(records, q), key, desc), page, size)
				a.logger.Debug("Listing", "matches", result.TotalItems, "page", result.Page, "pages", result.TotalPages)

				return render.Write(a.out, a.format, result, func(w io.Writer) error {
					return render.PageText(w, result, isFavorite)
				})
			})
		},
	}
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "Match name substring or exact id")
	cmd.Flags().StringSliceVarP(&q.Types, "type", "t", nil, "Require type (repeatable, all must match)")
	cmd.Flags().StringVar(&sortKey, "sort", string(browse.SortID), "Sort by id, name, height, weight or total")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Page size: 12, 24, 36 or 48 (default POKEDEX_PAGE_SIZE)")
	cmd.Flags().BoolVar(&favsOnly, "favorites", false, "Only list favorites")
	return cmd
}

// --------------------------------------------------------------------------
// show / random commands
// --------------------------------------------------------------------------

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one Pokémon with evolutions, abilities and similar Pokémon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return run(cmd, func(ctx context.Context, a *app) error {
				return showDetail(ctx, a, id)
			})
		},
	}
}

func randomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Show a random Pokémon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, a *app) error {
				return showDetail(ctx, a, compare.RandomID(a.rng))
			})
		},
	}
}

func showDetail(ctx context.Context, a *app, id int) error {
	d, err := a.details.LoadDetail(ctx, id)
	if err != nil {
		return err
	}
	return render.Write(a.out, a.format, d, func(w io.Writer) error {
		return render.DetailText(w, d, a.favoriteMarks(ctx)(d.ID))
	})
}

// --------------------------------------------------------------------------
// compare command
// --------------------------------------------------------------------------

func compareCmd() *cobra.Command {
	var random bool
	cmd := &cobra.Command{
		Use:   "compare <id> <id>",
		Short: "Compare the base stats of two Pokémon",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ids [2]int
			switch {
			case random && len(args) == 0:
			case !random && len(args) == 2:
				for i, arg := range args {
					id, err := parseID(arg)
					if err != nil {
						return err
					}
					ids[i] = id
				}
			default:
				return fmt.Errorf("compare takes two ids or --random")
			}

			return run(cmd, func(ctx context.Context, a *app) error {
				if random {
					ids[0], ids[1] = compare.RandomPair(a.rng)
				}
				var records [2]provider.Pokemon
				g, gctx := errgroup.WithContext(ctx)
				for i, id := range ids {
					g.Go(func() error {
						p, err := a.loader.LoadRecord(gctx, id)
						records[i] = p
						return err
					})
				}
				if err := g.Wait(); err != nil {
					return err
				}

				result := compare.Compare(records[0], records[1])
				return render.Write(a.out, a.format, result, func(w io.Writer) error {
					return render.ComparisonText(w, result)
				})
			})
		},
	}
	cmd.Flags().BoolVar(&random, "random", false, "Compare two distinct random Pokémon")
	return cmd
}

// --------------------------------------------------------------------------
// favorites command
// --------------------------------------------------------------------------

func favoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage favorite Pokémon",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List favorites in catalog order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, a *app) error {
				set, err := a.favoriteSet(ctx)
				if err != nil {
					return err
				}
				records := []provider.Pokemon{}
				if set.Len() > 0 {
					all, err := a.loader.LoadCatalog(ctx)
					if err != nil {
						return err
					}
					records = favorites.Select(all, set.IDs())
				}
				return render.Write(a.out, a.format, records, func(w io.Writer) error {
					return render.FavoritesText(w, records)
				})
			})
		},
	})
	cmd.AddCommand(mutateCmd("add", "Add a favorite", func(ctx context.Context, set *favorites.Set, id int) (string, error) {
		return fmt.Sprintf("Added %s to favorites", render.Number(id)), set.Add(ctx, id)
	}))
	cmd.AddCommand(mutateCmd("remove", "Remove a favorite", func(ctx context.Context, set *favorites.Set, id int) (string, error) {
		return fmt.Sprintf("Removed %s from favorites", render.Number(id)), set.Remove(ctx, id)
	}))
	cmd.AddCommand(mutateCmd("toggle", "Add or remove a favorite", func(ctx context.Context, set *favorites.Set, id int) (string, error) {
		on, err := set.Toggle(ctx, id)
		if on {
			return fmt.Sprintf("Added %s to favorites", render.Number(id)), err
		}
		return fmt.Sprintf("Removed %s from favorites", render.Number(id)), err
	}))
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every favorite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, a *app) error {
				set, err := a.favoriteSet(ctx)
				if err != nil {
					return err
				}
				n := set.Len()
				if err := set.Clear(ctx); err != nil {
					return err
				}
				_, err = fmt.Fprintf(a.out, "Cleared %d favorites\n", n)
				return err
			})
		},
	})
	return cmd
}

func mutateCmd(use, short string, fn func(ctx context.Context, set *favorites.Set, id int) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return run(cmd, func(ctx context.Context, a *app) error {
				set, err := a.favoriteSet(ctx)
				if err != nil {
					return err
				}
				msg, err := fn(ctx, set, id)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, msg)
				return err
			})
		},
	}
}
