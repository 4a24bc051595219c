package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/streamz/streamz-backend/internal/models"
)

// psql — построитель запросов с нумерованными плейсхолдерами PostgreSQL.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// contentQuery собирает запрос списка каталога с порогом цены плана
// и необязательными фильтрами.
func contentQuery(columns string, maxPlanPrice int, filter models.ContentFilter) sq.SelectBuilder {
	q := psql.Select(columns).
		From("content c").
		Join("subscription_plans p ON p.id = c.min_plan_id").
		Where(sq.LtOrEq{"p.price": maxPlanPrice})

	if filter.ContentType != nil {
		q = q.Where(sq.Eq{"c.content_type": *filter.ContentType})
	}
	if filter.ReleaseYear != nil {
		q = q.Where(sq.Eq{"c.release_year": *filter.ReleaseYear})
	}
	if filter.GenreID != nil {
		q = q.Where(`EXISTS (SELECT 1 FROM content_genres cg
			WHERE cg.content_id = c.id AND cg.genre_id = ?)`, *filter.GenreID)
	}
	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		q = q.Where(sq.Or{
			sq.ILike{"c.title": pattern},
			sq.ILike{"c.description": pattern},
		})
	}
	return q
}

// ListContent возвращает страницу контента, доступного плану с ценой maxPlanPrice
// (включительно), с учётом фильтров. Порядок по id, поэтому страницы стабильны.
func (s *Storage) ListContent(ctx context.Context, maxPlanPrice int, filter models.ContentFilter, limit, offset int) ([]*models.Content, error) {
	const op = "storage.ListContent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query, args, err := contentQuery(
		"c.id, c.title, c.description, c.content_type, c.release_year, c.poster_url, c.min_plan_id, p.price",
		maxPlanPrice, filter).
		OrderBy("c.id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Content
	for rows.Next() {
		var item models.Content
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.ContentType,
			&item.ReleaseYear, &item.PosterURL, &item.MinPlanID, &item.MinPlanPrice); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.attachGenres(ctx, result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountContent считает контент, доступный плану с ценой maxPlanPrice, с учётом фильтров.
func (s *Storage) CountContent(ctx context.Context, maxPlanPrice int, filter models.ContentFilter) (int, error) {
	const op = "storage.CountContent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query, args, err := contentQuery("COUNT(*)", maxPlanPrice, filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// ReadContent возвращает единицу каталога по id вместе с ценой её минимального
// плана. Проверку прав выполняет вызывающая сторона.
func (s *Storage) ReadContent(ctx context.Context, id int) (*models.Content, error) {
	const op = "storage.ReadContent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.title, c.description, c.content_type, c.release_year,
			      c.poster_url, c.min_plan_id, p.price
			  FROM content c
			  JOIN subscription_plans p ON p.id = c.min_plan_id
			  WHERE c.id = $1`
	var item models.Content
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&item.ID, &item.Title, &item.Description, &item.ContentType,
		&item.ReleaseYear, &item.PosterURL, &item.MinPlanID, &item.MinPlanPrice); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.attachGenres(ctx, []*models.Content{&item}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &item, nil
}

// ListEpisodes возвращает эпизоды сериала в порядке сезонов и номеров.
func (s *Storage) ListEpisodes(ctx context.Context, contentID int) ([]models.Episode, error) {
	const op = "storage.ListEpisodes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, content_id, season_number, episode_number, title, description, duration_minutes
			  FROM episodes
			  WHERE content_id = $1
			  ORDER BY season_number, episode_number`
	rows, err := s.DB.QueryContext(ctx, query, contentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Episode
	for rows.Next() {
		var ep models.Episode
		if err := rows.Scan(&ep.ID, &ep.ContentID, &ep.SeasonNumber, &ep.EpisodeNumber,
			&ep.Title, &ep.Description, &ep.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, ep)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListGenres возвращает все жанры.
func (s *Storage) ListGenres(ctx context.Context) ([]*models.Genre, error) {
	const op = "storage.ListGenres"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name FROM genres ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Genre
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// attachGenres догружает жанры для набора единиц контента одним запросом.
func (s *Storage) attachGenres(ctx context.Context, items []*models.Content) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int32, 0, len(items))
	byID := make(map[int]*models.Content, len(items))
	for _, item := range items {
		ids = append(ids, int32(item.ID))
		byID[item.ID] = item
		item.Genres = []models.Genre{}
	}

	query := `SELECT cg.content_id, g.id, g.name
			  FROM content_genres cg
			  JOIN genres g ON g.id = cg.genre_id
			  WHERE cg.content_id = ANY($1)
			  ORDER BY g.id`
	rows, err := s.DB.QueryContext(ctx, query, ids)
	if err != nil {
		return err
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var contentID int
		var g models.Genre
		if err := rows.Scan(&contentID, &g.ID, &g.Name); err != nil {
			return err
		}
		if item, ok := byID[contentID]; ok {
			item.Genres = append(item.Genres, g)
		}
	}
	return rows.Err()
}
