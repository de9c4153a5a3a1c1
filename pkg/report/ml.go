package report

import (
	"context"
	"fmt"

	"edustats/pkg/learn"
	"edustats/pkg/model"
)

// Score is a model's metric on the held-out and training rows.
type Score struct {
	Model string
	Test  float64
	Train float64
}

func (r *Runner) split() learn.Split {
	return learn.Split{TestRatio: r.cfg.ML.TestRatio, Seed: r.cfg.ML.Seed}
}

// Selectivity fits the classifiers that predict an institution's
// selectivity category from its racial make-up and scores them by accuracy.
func (r *Runner) Selectivity() ([]Score, error) {
	c, err := learn.RaceSelectivity(r.ds.RacialYear, r.split())
	if err != nil {
		return nil, err
	}
	r.log.Info("selectivity data", "train", len(c.XTrain), "test", len(c.XTest),
		"dropped", c.Dropped, "classes", c.Classes)

	ml := r.cfg.ML
	models := []struct {
		name string
		m    model.Classifier
	}{
		{"Decision Tree Model", model.NewDecisionTreeClassifier(model.WithRandomState(ml.Seed))},
		{"Random Forest", model.NewRandomForest(model.WithNEstimators(ml.ForestTrees), model.WithForestSeed(ml.ForestSeed))},
		{"K-Nearest Neighbors", model.NewKNN(ml.K)},
	}
	scores := make([]Score, 0, len(models))
	for _, m := range models {
		if err := m.m.Fit(c.XTrain, c.YTrain); err != nil {
			return nil, fmt.Errorf("%s: %w", m.name, err)
		}
		test, err := m.m.Predict(c.XTest)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.name, err)
		}
		train, err := m.m.Predict(c.XTrain)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.name, err)
		}
		scores = append(scores, Score{
			Model: m.name,
			Test:  model.Accuracy(c.YTest, test),
			Train: model.Accuracy(c.YTrain, train),
		})
	}
	return scores, nil
}

// SAT fits the regressors that predict an institution's average SAT score
// from its socio-economic make-up and scores them by RMSE.
func (r *Runner) SAT() ([]Score, error) {
	d, err := learn.SocioSAT(r.ds.Merged, r.split())
	if err != nil {
		return nil, err
	}
	r.log.Info("sat data", "train", len(d.XTrain), "test", len(d.XTest), "dropped", d.Dropped)

	ml := r.cfg.ML
	models := []struct {
		name string
		m    model.Regressor
	}{
		{"Decision Tree Model", model.NewDecisionTreeRegressor(model.WithRandomState(ml.Seed))},
		{"Random Forest", model.NewRandomForestRegressor(model.WithNEstimators(ml.RegForestTrees), model.WithForestSeed(ml.RegForestSeed))},
		{"SVM", model.NewSVR()},
	}
	scores := make([]Score, 0, len(models))
	for _, m := range models {
		if err := m.m.Fit(d.XTrain, d.YTrain); err != nil {
			return nil, fmt.Errorf("%s: %w", m.name, err)
		}
		test, err := m.m.Predict(d.XTest)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.name, err)
		}
		train, err := m.m.Predict(d.XTrain)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.name, err)
		}
		scores = append(scores, Score{
			Model: m.name,
			Test:  model.RMSE(d.YTest, test),
			Train: model.RMSE(d.YTrain, train),
		})
	}
	return scores, nil
}

func (r *Runner) ml(ctx context.Context) error {
	sel, err := r.Selectivity()
	if err != nil {
		return fmt.Errorf("selectivity: %w", err)
	}
	fmt.Fprintln(r.out, "Predicting Selectivity of College From Racial Make-Up of School Enrollment")
	for _, s := range sel {
		fmt.Fprintln(r.out, s.Model+" Test Accuracy:", s.Test)
		fmt.Fprintln(r.out, s.Model+" Train Accuracy:", s.Train)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	sat, err := r.SAT()
	if err != nil {
		return fmt.Errorf("sat: %w", err)
	}
	fmt.Fprintln(r.out, "Predicting Average SAT Score of College From Socio-economic Make-Up of School ")
	for _, s := range sat {
		fmt.Fprintln(r.out, s.Model+" Test Error:", s.Test)
		fmt.Fprintln(r.out, s.Model+" Train Error:", s.Train)
	}
	return nil
}
