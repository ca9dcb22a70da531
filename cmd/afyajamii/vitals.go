package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/juliet3570/afyajamii-client/internal/gateway"
	"github.com/juliet3570/afyajamii-client/internal/platform/shutdown"
	"github.com/juliet3570/afyajamii-client/internal/vitals"
)

func vitalsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vitals",
		Short: "Vital-sign submissions",
	}
	cmd.AddCommand(vitalsSubmitCmd(app))
	return cmd
}

func vitalsSubmitCmd(app *App) *cobra.Command {
	form := vitals.NewForm()

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit vitals for AI risk assessment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := shutdown.NotifyContext(cmd.Context())
			defer stop()

			pipeline := vitals.NewPipeline(app.API, app.Sessions, app.Log)
			return pipeline.Submit(ctx, &form, func(a *gateway.RiskAssessment) {
				renderAssessment(os.Stdout, a)
			})
		},
	}

	cmd.Flags().StringVar(&form.Age, "age", "", "age in years")
	cmd.Flags().StringVar(&form.SystolicBP, "systolic", "", "systolic blood pressure (mmHg)")
	cmd.Flags().StringVar(&form.DiastolicBP, "diastolic", "", "diastolic blood pressure (mmHg)")
	cmd.Flags().StringVar(&form.BloodSugar, "sugar", "", "blood sugar (mmol/L)")
	cmd.Flags().StringVar(&form.BodyTemp, "temp", "", "body temperature")
	cmd.Flags().StringVar(&form.BodyTempUnit, "unit", form.BodyTempUnit, "temperature unit: celsius or fahrenheit")
	cmd.Flags().StringVar(&form.HeartRate, "heart-rate", "", "heart rate (bpm)")
	cmd.Flags().StringVar(&form.PatientHistory, "history", "", "free-text medical history note")
	return cmd
}
