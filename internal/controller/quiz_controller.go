package controller

import (
	"budaya_backend/internal/service"
	"budaya_backend/internal/util"
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	AttemptService *service.QuizAttemptService
}

func NewQuizController(attemptService *service.QuizAttemptService) *QuizController {
	return &QuizController{AttemptService: attemptService}
}

func attemptIDParam(ctx *gin.Context) (uint, bool) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid attempt id")
		return 0, false
	}
	return id, true
}

// @Summary 开始答题
// @Description 游客可直接开始，携带令牌时记录用户
// @Tags 测验
// @Accept json
// @Produce json
// @Param slug path string true "测验 slug"
// @Param request body service.StartAttemptRequest false "是否打乱题目顺序"
// @Success 201 {object} util.Response{data=service.StartAttemptResult}
// @Failure 404 {object} util.Response
// @Router /quizzes/{slug}/attempts [post]
func (c *QuizController) StartAttempt(ctx *gin.Context) {
	var req service.StartAttemptRequest
	// 请求体可省略
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AttemptService.StartAttempt(ctx.Request.Context(), ctx.Param("slug"), util.OptionalUserID(ctx), req.Shuffle)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, res)
}

// @Summary 提交答案
// @Tags 测验
// @Accept json
// @Produce json
// @Param id path int true "答题ID"
// @Param request body service.SubmitAnswerRequest true "题目与选项"
// @Success 200 {object} util.Response{data=service.SubmitAnswerResult}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /quiz-attempts/{id}/answers [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	id, ok := attemptIDParam(ctx)
	if !ok {
		return
	}

	var req service.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AttemptService.SubmitAnswer(ctx.Request.Context(), id, req.QuestionID, req.OptionID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary 完成答题
// @Tags 测验
// @Accept json
// @Produce json
// @Param id path int true "答题ID"
// @Param request body service.CompleteAttemptRequest true "用时（秒）"
// @Success 200 {object} util.Response{data=service.AttemptSummary}
// @Failure 404 {object} util.Response
// @Router /quiz-attempts/{id}/complete [post]
func (c *QuizController) CompleteAttempt(ctx *gin.Context) {
	id, ok := attemptIDParam(ctx)
	if !ok {
		return
	}

	var req service.CompleteAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AttemptService.CompleteAttempt(ctx.Request.Context(), id, *req.TimeTaken)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary 答题结果
// @Description 包含每题作答回顾，按题号排序
// @Tags 测验
// @Produce json
// @Param id path int true "答题ID"
// @Success 200 {object} util.Response{data=service.AttemptResult}
// @Failure 404 {object} util.Response
// @Router /quiz-attempts/{id}/result [get]
func (c *QuizController) GetAttemptResult(ctx *gin.Context) {
	id, ok := attemptIDParam(ctx)
	if !ok {
		return
	}

	res, err := c.AttemptService.GetAttemptResult(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary 我的答题记录
// @Tags 测验
// @Security ApiKeyAuth
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /quiz-attempts/mine [get]
func (c *QuizController) ListMyAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := 1, 10
	if p := ctx.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if l := ctx.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}

	list, total, err := c.AttemptService.ListUserAttempts(ctx.Request.Context(), user.UserID, page, limit)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  list,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
