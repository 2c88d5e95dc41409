package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/pkg/logger"
	"ebook-studio-be/internal/repository/specification"
	"ebook-studio-be/internal/repository/unitofwork"
	"ebook-studio-be/pkg/bookgen"
	"ebook-studio-be/pkg/llm"

	"github.com/google/uuid"
)

const defaultChapterCount = 5

type BookService interface {
	Generate(ctx context.Context, owner entity.OwnerID, req *dto.GenerateBookRequest) (*dto.BookResponse, error)
	List(ctx context.Context, owner entity.OwnerID) ([]dto.BookResponse, error)
	Get(ctx context.Context, owner entity.OwnerID, id uuid.UUID) (*dto.BookResponse, error)
}

type bookService struct {
	uowFactory  unitofwork.RepositoryFactory
	planService PlanService
	llm         llm.LLMProvider
	parser      *bookgen.Parser
	logger      logger.ILogger
	now         func() time.Time
}

func NewBookService(uowFactory unitofwork.RepositoryFactory, planService PlanService, provider llm.LLMProvider, logger logger.ILogger) BookService {
	return &bookService{
		uowFactory:  uowFactory,
		planService: planService,
		llm:         provider,
		parser:      bookgen.NewParser(),
		logger:      logger,
		now:         time.Now,
	}
}

func buildBookPrompt(req *dto.GenerateBookRequest) string {
	chapters := req.ChapterCount
	if chapters <= 0 {
		chapters = defaultChapterCount
	}

	var sb strings.Builder
	sb.WriteString("You are an experienced book author. Write a complete e-book draft.\n")
	fmt.Fprintf(&sb, "Working title: %s\n", req.Title)
	if req.Genre != "" {
		fmt.Fprintf(&sb, "Genre: %s\n", req.Genre)
	}
	fmt.Fprintf(&sb, "Number of chapters: %d\n", chapters)
	fmt.Fprintf(&sb, "Brief from the author:\n%s\n\n", req.Prompt)
	sb.WriteString(`Answer with a JSON object: {"title": string, "chapters": [{"title": string, "content": string}]}.`)
	return sb.String()
}

func (s *bookService) Generate(ctx context.Context, owner entity.OwnerID, req *dto.GenerateBookRequest) (*dto.BookResponse, error) {
	if owner.IsNil() || req == nil || strings.TrimSpace(req.Prompt) == "" || strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidInput
	}

	plan, err := s.planService.CheckCanCreateBook(ctx, owner)
	if err != nil {
		return nil, err
	}

	raw, err := s.llm.Generate(ctx, buildBookPrompt(req), llm.WithJSON(), llm.WithTemperature(0.7))
	if err != nil {
		s.logger.Error("BOOK", "LLM generation failed", map[string]interface{}{
			"owner_id": owner.String(),
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("failed to generate book: %w", err)
	}

	draft, err := s.parser.Parse(raw, req.Title)
	if err != nil {
		s.logger.Warn("BOOK", "Unusable LLM answer", map[string]interface{}{
			"owner_id": owner.String(),
			"length":   len(raw),
		})
		if errors.Is(err, bookgen.ErrEmptyOutput) {
			return nil, fmt.Errorf("failed to generate book: %w", err)
		}
		return nil, err
	}

	now := s.now()
	book := &entity.Book{
		Id:        uuid.New(),
		OwnerId:   owner,
		Title:     draft.Title,
		Genre:     req.Genre,
		Prompt:    req.Prompt,
		Status:    entity.BookStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, ch := range draft.Chapters {
		book.Chapters = append(book.Chapters, entity.Chapter{
			Id:        uuid.New(),
			BookId:    book.Id,
			Position:  i + 1,
			Title:     ch.Title,
			Content:   ch.Content,
			CreatedAt: now,
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.BookRepository().Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to save book: %w", err)
	}

	s.logger.Info("BOOK", "Book generated", map[string]interface{}{
		"owner_id":       owner.String(),
		"book_id":        book.Id.String(),
		"author_plan_id": plan.Id.String(),
		"chapters":       len(book.Chapters),
	})

	res := toBookResponse(book, true)
	return &res, nil
}

func (s *bookService) List(ctx context.Context, owner entity.OwnerID) ([]dto.BookResponse, error) {
	if owner.IsNil() {
		return nil, ErrInvalidInput
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	books, err := uow.BookRepository().FindAll(ctx, specification.OwnedBy{Owner: owner})
	if err != nil {
		return nil, fmt.Errorf("failed to load books: %w", err)
	}
	res := make([]dto.BookResponse, 0, len(books))
	for _, b := range books {
		res = append(res, toBookResponse(b, false))
	}
	return res, nil
}

func (s *bookService) Get(ctx context.Context, owner entity.OwnerID, id uuid.UUID) (*dto.BookResponse, error) {
	if owner.IsNil() || id == uuid.Nil {
		return nil, ErrInvalidInput
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	book, err := uow.BookRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{Owner: owner},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	res := toBookResponse(book, true)
	return &res, nil
}

func toBookResponse(b *entity.Book, withChapters bool) dto.BookResponse {
	res := dto.BookResponse{
		Id:        b.Id,
		Title:     b.Title,
		Genre:     b.Genre,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
	}
	if withChapters {
		for _, ch := range b.Chapters {
			res.Chapters = append(res.Chapters, dto.ChapterResponse{
				Id:       ch.Id,
				Position: ch.Position,
				Title:    ch.Title,
				Content:  ch.Content,
			})
		}
	}
	return res
}
